package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/cv-service/internal/models"
	"github.com/pribylovaa/cv-service/internal/service"
	apierrors "github.com/pribylovaa/cv-service/internal/transport/http/errors"
)

func (h *Handlers) GetCV(w http.ResponseWriter, r *http.Request) {
	e, ok := h.editor(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, cvFromState(e.State()))
}

func (h *Handlers) GetPreview(w http.ResponseWriter, r *http.Request) {
	e, ok := h.editor(w, r)
	if !ok {
		return
	}

	st := e.State()
	if st.CV == nil {
		apierrors.WriteError(w, r, service.ErrNotLoaded)
		return
	}

	writeJSON(w, http.StatusOK, previewFromCV(st.CV))
}

func (h *Handlers) UpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	e, ok := h.editor(w, r)
	if !ok {
		return
	}

	var in personalInfoRequest
	if err := h.bind(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if _, err := e.UpdatePersonalInfo(r.Context(), in.toModel()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cvFromState(e.State()))
}

// addEntry - POST /cv/<section>: идентификатор элемента назначает сервис.
func addEntry[Req entryRequest[T], T any](h *Handlers, add func(*service.Editor, context.Context, T) (*models.CV, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.editor(w, r)
		if !ok {
			return
		}

		var in Req
		if err := h.bind(r, &in); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		if _, err := add(e, r.Context(), in.toModel("")); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, cvFromState(e.State()))
	}
}

// updateEntry - PUT /cv/<section>/{id}: неизвестный id не меняет резюме.
func updateEntry[Req entryRequest[T], T any](h *Handlers, update func(*service.Editor, context.Context, T) (*models.CV, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.editor(w, r)
		if !ok {
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			apierrors.WriteError(w, r, service.ErrInvalidArgument)
			return
		}

		var in Req
		if err := h.bind(r, &in); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		if _, err := update(e, r.Context(), in.toModel(id)); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, cvFromState(e.State()))
	}
}

// removeEntry - DELETE /cv/<section>/{index}: индекс вне диапазона не меняет резюме.
func removeEntry(h *Handlers, remove func(*service.Editor, context.Context, int) (*models.CV, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.editor(w, r)
		if !ok {
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("index: %w", service.ErrInvalidArgument))
			return
		}

		if _, err := remove(e, r.Context(), index); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, cvFromState(e.State()))
	}
}

func (h *Handlers) AddEducation() http.HandlerFunc {
	return addEntry[educationRequest](h, (*service.Editor).AddEducation)
}

func (h *Handlers) UpdateEducation() http.HandlerFunc {
	return updateEntry[educationRequest](h, (*service.Editor).UpdateEducation)
}

func (h *Handlers) RemoveEducation() http.HandlerFunc {
	return removeEntry(h, (*service.Editor).RemoveEducation)
}

func (h *Handlers) AddExperience() http.HandlerFunc {
	return addEntry[experienceRequest](h, (*service.Editor).AddExperience)
}

func (h *Handlers) UpdateExperience() http.HandlerFunc {
	return updateEntry[experienceRequest](h, (*service.Editor).UpdateExperience)
}

func (h *Handlers) RemoveExperience() http.HandlerFunc {
	return removeEntry(h, (*service.Editor).RemoveExperience)
}

func (h *Handlers) AddSkill() http.HandlerFunc {
	return addEntry[skillRequest](h, (*service.Editor).AddSkill)
}

func (h *Handlers) UpdateSkill() http.HandlerFunc {
	return updateEntry[skillRequest](h, (*service.Editor).UpdateSkill)
}

func (h *Handlers) RemoveSkill() http.HandlerFunc {
	return removeEntry(h, (*service.Editor).RemoveSkill)
}

func (h *Handlers) AddLanguage() http.HandlerFunc {
	return addEntry[languageRequest](h, (*service.Editor).AddLanguage)
}

func (h *Handlers) UpdateLanguage() http.HandlerFunc {
	return updateEntry[languageRequest](h, (*service.Editor).UpdateLanguage)
}

func (h *Handlers) RemoveLanguage() http.HandlerFunc {
	return removeEntry(h, (*service.Editor).RemoveLanguage)
}

func (h *Handlers) NextStep(w http.ResponseWriter, r *http.Request) {
	e, ok := h.editor(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, stepResponse{Step: e.NextStep()})
}

func (h *Handlers) PrevStep(w http.ResponseWriter, r *http.Request) {
	e, ok := h.editor(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, stepResponse{Step: e.PrevStep()})
}

func (h *Handlers) SetEditMode(w http.ResponseWriter, r *http.Request) {
	e, ok := h.editor(w, r)
	if !ok {
		return
	}

	var in editModeRequest
	if err := h.bind(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	e.SetEditMode(*in.EditMode)
	writeJSON(w, http.StatusOK, cvFromState(e.State()))
}

// SignOut закрывает сессию редактирования вызывающего.
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.Sessions.SignOut(id.UserID)
	w.WriteHeader(http.StatusNoContent)
}
