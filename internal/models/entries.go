package models

import (
	"strings"
	"time"
)

const (
	DefaultEducationColor  = "blue"
	DefaultExperienceColor = "green"

	// presentLabel выводится вместо даты окончания у текущих записей.
	presentLabel = "Presente"
	endLayout    = "01/2006"
)

// Education - запись об образовании.
// IsCurrentlyStudying влияет только на отображение (EndLabel), EndDate при этом может быть задан.
type Education struct {
	ID                  string     `json:"id"`
	Degree              string     `json:"degree"`
	Institution         string     `json:"institution"`
	Location            string     `json:"location"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	IsCurrentlyStudying bool       `json:"isCurrentlyStudying"`
	Description         string     `json:"description"`
	Color               string     `json:"color"`
}

// EndLabel - подпись даты окончания для превью.
func (e Education) EndLabel() string {
	return endLabel(e.IsCurrentlyStudying, e.EndDate)
}

// CardColor - цвет карточки с учётом значения по умолчанию.
func (e Education) CardColor() string {
	return CardColor(e.Color, DefaultEducationColor)
}

// Experience - запись об опыте работы.
type Experience struct {
	ID                 string     `json:"id"`
	Position           string     `json:"position"`
	Company            string     `json:"company"`
	Location           string     `json:"location"`
	StartDate          time.Time  `json:"startDate"`
	EndDate            *time.Time `json:"endDate,omitempty"`
	IsCurrentlyWorking bool       `json:"isCurrentlyWorking"`
	Description        string     `json:"description"`
	Achievements       []string   `json:"achievements"`
	Color              string     `json:"color"`
}

func (e Experience) EndLabel() string {
	return endLabel(e.IsCurrentlyWorking, e.EndDate)
}

func (e Experience) CardColor() string {
	return CardColor(e.Color, DefaultExperienceColor)
}

// SkillCategory - категория навыка.
type SkillCategory string

const (
	SkillTechnical SkillCategory = "technical"
	SkillSoft      SkillCategory = "soft"
	SkillLanguage  SkillCategory = "language"
	SkillOther     SkillCategory = "other"
)

// Label - подпись категории в интерфейсе.
func (c SkillCategory) Label() string {
	switch c {
	case SkillTechnical:
		return "Tecnica"
	case SkillSoft:
		return "Soft Skill"
	case SkillLanguage:
		return "Lingua"
	default:
		return "Altro"
	}
}

// Valid сообщает, входит ли значение в перечисление.
func (c SkillCategory) Valid() bool {
	switch c {
	case SkillTechnical, SkillSoft, SkillLanguage, SkillOther:
		return true
	}

	return false
}

// Skill - навык. Level задуман в диапазоне 1–5, но не проверяется.
type Skill struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Level    int           `json:"level"`
	Category SkillCategory `json:"category"`
}

// Proficiency - уровень владения языком.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyFluent       Proficiency = "fluent"
	ProficiencyNative       Proficiency = "native"
)

func (p Proficiency) Label() string {
	switch p {
	case ProficiencyBeginner:
		return "Base"
	case ProficiencyIntermediate:
		return "Intermedio"
	case ProficiencyAdvanced:
		return "Avanzato"
	case ProficiencyFluent:
		return "Fluente"
	case ProficiencyNative:
		return "Madrelingua"
	default:
		return ""
	}
}

func (p Proficiency) Valid() bool {
	return p.Label() != ""
}

// Language - иностранный язык.
type Language struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

// CardColor нормализует открытый цветовой тег к палитре превью.
// Неизвестные значения заменяются на fallback.
func CardColor(tag, fallback string) string {
	switch t := strings.ToLower(strings.TrimSpace(tag)); t {
	case "blue", "green", "orange", "purple", "red":
		return t
	default:
		return fallback
	}
}

func endLabel(current bool, end *time.Time) string {
	if current {
		return presentLabel
	}

	if end == nil {
		return ""
	}

	return end.Format(endLayout)
}
