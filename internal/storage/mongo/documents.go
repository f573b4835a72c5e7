package mongo

import (
	"time"

	"github.com/pribylovaa/cv-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Документы хранят поля в camelCase: так их видят и другие клиенты коллекций.

type cvDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	UserID       string               `bson:"userId"`
	PersonalInfo personalInfoDocument `bson:"personalInfo"`
	Education    []educationDocument  `bson:"education"`
	Experience   []experienceDocument `bson:"experience"`
	Skills       []skillDocument      `bson:"skills"`
	Languages    []languageDocument   `bson:"languages"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

type personalInfoDocument struct {
	Name     string `bson:"name"`
	Email    string `bson:"email"`
	Phone    string `bson:"phone"`
	Location string `bson:"location"`
	Title    string `bson:"title"`
	Summary  string `bson:"summary"`
	PhotoURL string `bson:"photoURL"`
}

type educationDocument struct {
	ID                  string     `bson:"id"`
	Degree              string     `bson:"degree"`
	Institution         string     `bson:"institution"`
	Location            string     `bson:"location"`
	StartDate           time.Time  `bson:"startDate"`
	EndDate             *time.Time `bson:"endDate,omitempty"`
	IsCurrentlyStudying bool       `bson:"isCurrentlyStudying"`
	Description         string     `bson:"description"`
	Color               string     `bson:"color"`
}

type experienceDocument struct {
	ID                 string     `bson:"id"`
	Position           string     `bson:"position"`
	Company            string     `bson:"company"`
	Location           string     `bson:"location"`
	StartDate          time.Time  `bson:"startDate"`
	EndDate            *time.Time `bson:"endDate,omitempty"`
	IsCurrentlyWorking bool       `bson:"isCurrentlyWorking"`
	Description        string     `bson:"description"`
	Achievements       []string   `bson:"achievements"`
	Color              string     `bson:"color"`
}

type skillDocument struct {
	ID       string `bson:"id"`
	Name     string `bson:"name"`
	Level    int    `bson:"level"`
	Category string `bson:"category"`
}

type languageDocument struct {
	ID          string `bson:"id"`
	Name        string `bson:"name"`
	Proficiency string `bson:"proficiency"`
}

type userDocument struct {
	UserID    string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	PhotoURL  string    `bson:"photoURL,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
}

func toCVDocument(cv models.CV) cvDocument {
	doc := cvDocument{
		UserID:       cv.UserID,
		PersonalInfo: personalInfoDocument(cv.PersonalInfo),
		Education:    make([]educationDocument, 0, len(cv.Education)),
		Experience:   make([]experienceDocument, 0, len(cv.Experience)),
		Skills:       make([]skillDocument, 0, len(cv.Skills)),
		Languages:    make([]languageDocument, 0, len(cv.Languages)),
		CreatedAt:    toMS(cv.CreatedAt),
		UpdatedAt:    toMS(cv.UpdatedAt),
	}

	for _, e := range cv.Education {
		doc.Education = append(doc.Education, educationDocument(e))
	}

	for _, e := range cv.Experience {
		doc.Experience = append(doc.Experience, experienceDocument(e))
	}

	for _, s := range cv.Skills {
		doc.Skills = append(doc.Skills, skillDocument{
			ID: s.ID, Name: s.Name, Level: s.Level, Category: string(s.Category),
		})
	}

	for _, l := range cv.Languages {
		doc.Languages = append(doc.Languages, languageDocument{
			ID: l.ID, Name: l.Name, Proficiency: string(l.Proficiency),
		})
	}

	return doc
}

// fromCVDocument - обратное преобразование. Отсутствующие массивы становятся пустыми.
func fromCVDocument(doc cvDocument) models.CV {
	cv := models.CV{
		ID:           doc.ID.Hex(),
		UserID:       doc.UserID,
		PersonalInfo: models.PersonalInfo(doc.PersonalInfo),
		Education:    make([]models.Education, 0, len(doc.Education)),
		Experience:   make([]models.Experience, 0, len(doc.Experience)),
		Skills:       make([]models.Skill, 0, len(doc.Skills)),
		Languages:    make([]models.Language, 0, len(doc.Languages)),
		CreatedAt:    doc.CreatedAt.UTC(),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}

	for _, e := range doc.Education {
		e.StartDate = e.StartDate.UTC()
		cv.Education = append(cv.Education, models.Education(e))
	}

	for _, e := range doc.Experience {
		e.StartDate = e.StartDate.UTC()
		if e.Achievements == nil {
			e.Achievements = []string{}
		}
		cv.Experience = append(cv.Experience, models.Experience(e))
	}

	for _, s := range doc.Skills {
		cv.Skills = append(cv.Skills, models.Skill{
			ID: s.ID, Name: s.Name, Level: s.Level, Category: models.SkillCategory(s.Category),
		})
	}

	for _, l := range doc.Languages {
		cv.Languages = append(cv.Languages, models.Language{
			ID: l.ID, Name: l.Name, Proficiency: models.Proficiency(l.Proficiency),
		})
	}

	return cv
}

func fromUserDocument(doc userDocument) models.UserProfile {
	return models.UserProfile{
		UserID:    doc.UserID,
		Name:      doc.Name,
		Email:     doc.Email,
		PhotoURL:  doc.PhotoURL,
		CreatedAt: doc.CreatedAt.UTC(),
	}
}

// toMS приводит время к точности MongoDB DateTime.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
