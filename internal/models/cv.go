// Package models содержит доменные сущности cv-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CV - агрегат «резюме пользователя»: одна запись на пользователя.
// Важно:
//   - ID - ObjectID документа в коллекции cvs (hex); пуст до первого сохранения;
//   - UserID - идентификатор владельца у внешнего провайдера идентичности;
//   - вложенные последовательности принадлежат только этой записи и сохраняются целиком;
//   - CreatedAt/UpdatedAt - UTC с точностью до миллисекунд (ограничение MongoDB DateTime).
type CV struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       []Skill      `json:"skills"`
	Languages    []Language   `json:"languages"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// NewCV возвращает пустое резюме пользователя: все последовательности пусты,
// личные данные не заполнены.
func NewCV(userID string, now time.Time) CV {
	return CV{
		UserID:     userID,
		Education:  []Education{},
		Experience: []Experience{},
		Skills:     []Skill{},
		Languages:  []Language{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsComplete - производный признак заполненности; на запись не проверяется.
// Языки не учитываются.
func (c CV) IsComplete() bool {
	return c.PersonalInfo.Name != "" &&
		c.PersonalInfo.Email != "" &&
		len(c.Education) > 0 &&
		len(c.Experience) > 0 &&
		len(c.Skills) > 0
}

// Clone возвращает глубокую копию агрегата.
func (c CV) Clone() CV {
	out := c
	out.Education = append([]Education{}, c.Education...)
	for i := range out.Education {
		out.Education[i].EndDate = cloneTime(c.Education[i].EndDate)
	}

	out.Experience = append([]Experience{}, c.Experience...)
	for i := range out.Experience {
		out.Experience[i].EndDate = cloneTime(c.Experience[i].EndDate)
		out.Experience[i].Achievements = append([]string{}, c.Experience[i].Achievements...)
	}

	out.Skills = append([]Skill{}, c.Skills...)
	out.Languages = append([]Language{}, c.Languages...)

	return out
}

// PersonalInfo - личные данные; свободный текст без проверки формата.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	PhotoURL string `json:"photoURL"`
}

// NewEntryID генерирует идентификатор элемента последовательности.
func NewEntryID() string {
	return uuid.NewString()
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	v := *t
	return &v
}
