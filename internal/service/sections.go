package service

import (
	"context"
	"slices"

	"github.com/pribylovaa/cv-service/internal/models"
	"github.com/pribylovaa/cv-service/pkg/log"
	"github.com/pribylovaa/cv-service/pkg/redact"
)

// Мутации разделов резюме. Общие правила:
//   - Add добавляет запись в конец (пустой ID генерируется);
//   - Update ищет запись по ID линейным проходом; нет совпадения - no-op без сохранения;
//   - Remove удаляет по индексу; индекс вне [0, len) - no-op без сохранения;
//   - соседние разделы не меняются, каждая мутация - отдельное сохранение документа.

func (e *Editor) UpdatePersonalInfo(ctx context.Context, info models.PersonalInfo) (*models.CV, error) {
	log.From(ctx).Debug("personal info update",
		"email", redact.Email(info.Email),
		"phone", redact.Phone(info.Phone),
	)

	return e.mutate(ctx, "service/editor/UpdatePersonalInfo", func(cv *models.CV) bool {
		cv.PersonalInfo = info
		return true
	})
}

func (e *Editor) AddEducation(ctx context.Context, entry models.Education) (*models.CV, error) {
	if entry.ID == "" {
		entry.ID = models.NewEntryID()
	}

	if entry.Color == "" {
		entry.Color = models.DefaultEducationColor
	}

	return e.mutate(ctx, "service/editor/AddEducation", func(cv *models.CV) bool {
		cv.Education = append(cv.Education, entry)
		return true
	})
}

func (e *Editor) UpdateEducation(ctx context.Context, entry models.Education) (*models.CV, error) {
	return e.mutate(ctx, "service/editor/UpdateEducation", func(cv *models.CV) bool {
		return replaceByID(cv.Education, entry, func(v models.Education) string { return v.ID })
	})
}

func (e *Editor) RemoveEducation(ctx context.Context, index int) (*models.CV, error) {
	return e.mutate(ctx, "service/editor/RemoveEducation", func(cv *models.CV) bool {
		var ok bool
		cv.Education, ok = removeAt(cv.Education, index)
		return ok
	})
}

func (e *Editor) AddExperience(ctx context.Context, entry models.Experience) (*models.CV, error) {
	if entry.ID == "" {
		entry.ID = models.NewEntryID()
	}

	if entry.Color == "" {
		entry.Color = models.DefaultExperienceColor
	}

	if entry.Achievements == nil {
		entry.Achievements = []string{}
	}

	return e.mutate(ctx, "service/editor/AddExperience", func(cv *models.CV) bool {
		cv.Experience = append(cv.Experience, entry)
		return true
	})
}

func (e *Editor) UpdateExperience(ctx context.Context, entry models.Experience) (*models.CV, error) {
	if entry.Achievements == nil {
		entry.Achievements = []string{}
	}

	return e.mutate(ctx, "service/editor/UpdateExperience", func(cv *models.CV) bool {
		return replaceByID(cv.Experience, entry, func(v models.Experience) string { return v.ID })
	})
}

func (e *Editor) RemoveExperience(ctx context.Context, index int) (*models.CV, error) {
	return e.mutate(ctx, "service/editor/RemoveExperience", func(cv *models.CV) bool {
		var ok bool
		cv.Experience, ok = removeAt(cv.Experience, index)
		return ok
	})
}

func (e *Editor) AddSkill(ctx context.Context, entry models.Skill) (*models.CV, error) {
	if entry.ID == "" {
		entry.ID = models.NewEntryID()
	}

	return e.mutate(ctx, "service/editor/AddSkill", func(cv *models.CV) bool {
		cv.Skills = append(cv.Skills, entry)
		return true
	})
}

func (e *Editor) UpdateSkill(ctx context.Context, entry models.Skill) (*models.CV, error) {
	return e.mutate(ctx, "service/editor/UpdateSkill", func(cv *models.CV) bool {
		return replaceByID(cv.Skills, entry, func(v models.Skill) string { return v.ID })
	})
}

func (e *Editor) RemoveSkill(ctx context.Context, index int) (*models.CV, error) {
	return e.mutate(ctx, "service/editor/RemoveSkill", func(cv *models.CV) bool {
		var ok bool
		cv.Skills, ok = removeAt(cv.Skills, index)
		return ok
	})
}

func (e *Editor) AddLanguage(ctx context.Context, entry models.Language) (*models.CV, error) {
	if entry.ID == "" {
		entry.ID = models.NewEntryID()
	}

	return e.mutate(ctx, "service/editor/AddLanguage", func(cv *models.CV) bool {
		cv.Languages = append(cv.Languages, entry)
		return true
	})
}

func (e *Editor) UpdateLanguage(ctx context.Context, entry models.Language) (*models.CV, error) {
	return e.mutate(ctx, "service/editor/UpdateLanguage", func(cv *models.CV) bool {
		return replaceByID(cv.Languages, entry, func(v models.Language) string { return v.ID })
	})
}

func (e *Editor) RemoveLanguage(ctx context.Context, index int) (*models.CV, error) {
	return e.mutate(ctx, "service/editor/RemoveLanguage", func(cv *models.CV) bool {
		var ok bool
		cv.Languages, ok = removeAt(cv.Languages, index)
		return ok
	})
}

// replaceByID заменяет первую запись с тем же ID; false - совпадений нет.
func replaceByID[T any](s []T, v T, id func(T) string) bool {
	want := id(v)
	if want == "" {
		return false
	}

	i := slices.IndexFunc(s, func(x T) bool { return id(x) == want })
	if i < 0 {
		return false
	}

	s[i] = v
	return true
}

// removeAt удаляет элемент по индексу; false - индекс вне диапазона.
func removeAt[T any](s []T, i int) ([]T, bool) {
	if i < 0 || i >= len(s) {
		return s, false
	}

	return slices.Delete(s, i, i+1), true
}
