package handlers

import (
	"time"

	"github.com/pribylovaa/cv-service/internal/models"
	"github.com/pribylovaa/cv-service/internal/service"
)

// entryRequest - тело добавления/изменения элемента секции.
type entryRequest[T any] interface {
	toModel(id string) T
}

// personalInfoRequest - свободный текст без проверки формата.
type personalInfoRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	PhotoURL string `json:"photoURL"`
}

func (r personalInfoRequest) toModel() models.PersonalInfo {
	return models.PersonalInfo{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Location: r.Location,
		Title:    r.Title,
		Summary:  r.Summary,
		PhotoURL: r.PhotoURL,
	}
}

type educationRequest struct {
	Degree              string     `json:"degree" validate:"required"`
	Institution         string     `json:"institution" validate:"required"`
	Location            string     `json:"location"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	IsCurrentlyStudying bool       `json:"isCurrentlyStudying"`
	Description         string     `json:"description"`
	Color               string     `json:"color"`
}

func (r educationRequest) toModel(id string) models.Education {
	return models.Education{
		ID:                  id,
		Degree:              r.Degree,
		Institution:         r.Institution,
		Location:            r.Location,
		StartDate:           r.StartDate,
		EndDate:             r.EndDate,
		IsCurrentlyStudying: r.IsCurrentlyStudying,
		Description:         r.Description,
		Color:               r.Color,
	}
}

type experienceRequest struct {
	Position           string     `json:"position" validate:"required"`
	Company            string     `json:"company" validate:"required"`
	Location           string     `json:"location"`
	StartDate          time.Time  `json:"startDate"`
	EndDate            *time.Time `json:"endDate"`
	IsCurrentlyWorking bool       `json:"isCurrentlyWorking"`
	Description        string     `json:"description"`
	Achievements       []string   `json:"achievements" validate:"dive,required"`
	Color              string     `json:"color"`
}

func (r experienceRequest) toModel(id string) models.Experience {
	return models.Experience{
		ID:                 id,
		Position:           r.Position,
		Company:            r.Company,
		Location:           r.Location,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		IsCurrentlyWorking: r.IsCurrentlyWorking,
		Description:        r.Description,
		Achievements:       r.Achievements,
		Color:              r.Color,
	}
}

type skillRequest struct {
	Name     string `json:"name" validate:"required"`
	Level    int    `json:"level"`
	Category string `json:"category" validate:"required,oneof=technical soft language other"`
}

func (r skillRequest) toModel(id string) models.Skill {
	return models.Skill{
		ID:       id,
		Name:     r.Name,
		Level:    r.Level,
		Category: models.SkillCategory(r.Category),
	}
}

type languageRequest struct {
	Name        string `json:"name" validate:"required"`
	Proficiency string `json:"proficiency" validate:"required,oneof=beginner intermediate advanced fluent native"`
}

func (r languageRequest) toModel(id string) models.Language {
	return models.Language{
		ID:          id,
		Name:        r.Name,
		Proficiency: models.Proficiency(r.Proficiency),
	}
}

// cvResponse - резюме вместе с состоянием мастера редактирования.
type cvResponse struct {
	CV         *models.CV `json:"cv"`
	IsComplete bool       `json:"isComplete"`
	Step       int        `json:"step"`
	EditMode   bool       `json:"editMode"`
}

func cvFromState(st service.State) cvResponse {
	return cvResponse{
		CV:         st.CV,
		IsComplete: st.CV != nil && st.CV.IsComplete(),
		Step:       st.Step,
		EditMode:   st.EditMode,
	}
}

type stepResponse struct {
	Step int `json:"step"`
}

type editModeRequest struct {
	EditMode *bool `json:"editMode" validate:"required"`
}

// previewResponse - резюме в виде, готовом к отображению:
// подписи дат окончания, цвета карточек и подписи перечислений.
type previewResponse struct {
	PersonalInfo models.PersonalInfo `json:"personalInfo"`
	Education    []previewEntry      `json:"education"`
	Experience   []previewEntry      `json:"experience"`
	Skills       []previewSkill      `json:"skills"`
	Languages    []previewLanguage   `json:"languages"`
	IsComplete   bool                `json:"isComplete"`
}

type previewEntry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Location     string   `json:"location"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
	Color        string   `json:"color"`
}

type previewSkill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

type previewLanguage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

const previewDateLayout = "01/2006"

func previewFromCV(cv *models.CV) previewResponse {
	out := previewResponse{
		PersonalInfo: cv.PersonalInfo,
		Education:    make([]previewEntry, 0, len(cv.Education)),
		Experience:   make([]previewEntry, 0, len(cv.Experience)),
		Skills:       make([]previewSkill, 0, len(cv.Skills)),
		Languages:    make([]previewLanguage, 0, len(cv.Languages)),
		IsComplete:   cv.IsComplete(),
	}

	for _, e := range cv.Education {
		out.Education = append(out.Education, previewEntry{
			ID:          e.ID,
			Title:       e.Degree,
			Subtitle:    e.Institution,
			Location:    e.Location,
			Start:       e.StartDate.Format(previewDateLayout),
			End:         e.EndLabel(),
			Description: e.Description,
			Color:       e.CardColor(),
		})
	}

	for _, e := range cv.Experience {
		out.Experience = append(out.Experience, previewEntry{
			ID:           e.ID,
			Title:        e.Position,
			Subtitle:     e.Company,
			Location:     e.Location,
			Start:        e.StartDate.Format(previewDateLayout),
			End:          e.EndLabel(),
			Description:  e.Description,
			Achievements: e.Achievements,
			Color:        e.CardColor(),
		})
	}

	for _, s := range cv.Skills {
		out.Skills = append(out.Skills, previewSkill{
			ID:       s.ID,
			Name:     s.Name,
			Level:    s.Level,
			Category: s.Category.Label(),
		})
	}

	for _, l := range cv.Languages {
		out.Languages = append(out.Languages, previewLanguage{
			ID:          l.ID,
			Name:        l.Name,
			Proficiency: l.Proficiency.Label(),
		})
	}

	return out
}

type registerRequest struct {
	Name  string `json:"name" validate:"max=200"`
	Email string `json:"email" validate:"omitempty,email"`
}

type photoResponse struct {
	PhotoURL string `json:"photoURL"`
}

type improveRequest struct {
	Text    string `json:"text" validate:"required"`
	Context string `json:"context"`
}

type improveResponse struct {
	Text string `json:"text"`
}

// transcriptLine - строка NDJSON-потока распознавания.
type transcriptLine struct {
	Transcript string `json:"transcript"`
	Final      bool   `json:"final"`
}
