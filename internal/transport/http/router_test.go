package http

// Сквозные тесты REST-слоя: роутер + middleware + хендлеры поверх настоящих
// service.Sessions/service.Profiles и моков хранилищ из /mocks.

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/cv-service/internal/completion"
	"github.com/pribylovaa/cv-service/internal/config"
	"github.com/pribylovaa/cv-service/internal/identity"
	"github.com/pribylovaa/cv-service/internal/models"
	"github.com/pribylovaa/cv-service/internal/service"
	"github.com/pribylovaa/cv-service/internal/speech"
	"github.com/pribylovaa/cv-service/internal/storage"
	"github.com/pribylovaa/cv-service/internal/transport/http/handlers"
	"github.com/pribylovaa/cv-service/mocks"
)

const testSecret = "router-secret"

var authCfg = config.AuthConfig{JWTSecret: testSecret, Issuer: "auth-service", Audience: []string{"cv-service"}}

type fakeImprover struct {
	out string
	err error
}

func (f fakeImprover) Improve(_ context.Context, text, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.out != "" {
		return f.out, nil
	}
	return text, nil
}

type fakeRecognizer struct {
	perm     speech.Permission
	partials []string
	err      error
}

func (f fakeRecognizer) Authorize(context.Context) (speech.Permission, error) {
	return f.perm, nil
}

func (f fakeRecognizer) Recognize(_ context.Context, audio io.Reader, _ string, onPartial func(string)) (string, error) {
	_, _ = io.ReadAll(audio)

	for _, p := range f.partials {
		onPartial(p)
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.partials) == 0 {
		return "", nil
	}

	return f.partials[len(f.partials)-1], nil
}

type testEnv struct {
	cvs      *mocks.MockCVStorage
	users    *mocks.MockUsersStorage
	photos   *mocks.MockPhotoStorage
	sessions *service.Sessions
	deps     handlers.Deps
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := &testEnv{
		cvs:    mocks.NewMockCVStorage(ctrl),
		users:  mocks.NewMockUsersStorage(ctrl),
		photos: mocks.NewMockPhotoStorage(ctrl),
	}
	env.sessions = service.NewSessions(env.cvs)
	env.deps = handlers.Deps{
		Sessions:      env.sessions,
		Profiles:      service.NewProfiles(env.users, env.photos),
		Improver:      fakeImprover{},
		Recognizer:    fakeRecognizer{perm: speech.PermissionAuthorized, partials: []string{"ciao"}},
		MaxPhotoBytes: 1024,
	}

	return env
}

func (e *testEnv) router() http.Handler {
	return NewRouter(e.deps, Options{
		Timeout:  5 * time.Second,
		Verifier: identity.NewVerifier(authCfg),
	})
}

func token(t *testing.T, uid string) string {
	t.Helper()

	now := time.Now()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   uid,
		"email": uid + "@example.com",
		"iss":   "auth-service",
		"aud":   []string{"cv-service"},
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return s
}

func do(t *testing.T, h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token(t, "u1"))
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	return do(t, h, method, path, bytes.NewReader(b))
}

type cvBody struct {
	CV         models.CV `json:"cv"`
	IsComplete bool      `json:"isComplete"`
	Step       int       `json:"step"`
	EditMode   bool      `json:"editMode"`
}

type errBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func existingCV() *models.CV {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	cv := models.NewCV("u1", now)
	cv.ID = "d1"
	cv.PersonalInfo = models.PersonalInfo{Name: "Anna", Email: "anna@example.com"}
	cv.Education = []models.Education{{
		ID:                  "e1",
		Degree:              "BSc",
		Institution:         "Politecnico",
		StartDate:           time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC),
		IsCurrentlyStudying: true,
		Color:               "Orange",
	}}
	cv.Experience = []models.Experience{{
		ID:           "x1",
		Position:     "Backend Developer",
		Company:      "Acme",
		StartDate:    time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		Achievements: []string{},
	}}
	cv.Skills = []models.Skill{{ID: "s1", Name: "Go", Level: 4, Category: models.SkillTechnical}}
	return &cv
}

func TestRouter_RequiresToken(t *testing.T) {
	env := newEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/cv", nil)
	rr := httptest.NewRecorder()
	env.router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	eb := decode[errBody](t, rr)
	require.Equal(t, "unauthenticated", eb.Error.Code)
	require.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	require.Equal(t, rr.Header().Get("X-Request-Id"), eb.Error.RequestID)
}

func TestRouter_GetCV_NewUserGetsEmptyCV(t *testing.T) {
	env := newEnv(t)

	env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(nil, storage.ErrNotFound)
	env.cvs.EXPECT().CreateCV(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cv models.CV) (string, error) {
			require.Equal(t, "u1", cv.UserID)
			require.Empty(t, cv.ID)
			return "d1", nil
		})

	rr := do(t, env.router(), http.MethodGet, "/v1/cv", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode[cvBody](t, rr)
	require.Equal(t, "d1", body.CV.ID)
	require.Equal(t, "u1", body.CV.UserID)
	require.False(t, body.IsComplete)
	require.Empty(t, body.CV.Education)
	require.Equal(t, 0, body.Step)
}

func TestRouter_LoadFailure_RetriedOnNextRequest(t *testing.T) {
	env := newEnv(t)
	h := env.router()

	gomock.InOrder(
		env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(nil, errors.New("connection refused")),
		env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil),
	)

	rr := do(t, h, http.MethodGet, "/v1/cv", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	eb := decode[errBody](t, rr)
	require.Equal(t, "load_failed", eb.Error.Code)
	require.NotContains(t, eb.Error.Message, "connection refused")

	rr = do(t, h, http.MethodGet, "/v1/cv", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, decode[cvBody](t, rr).IsComplete)
}

func TestRouter_AddEducation_SavesWholeCV(t *testing.T) {
	env := newEnv(t)

	env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil)
	env.cvs.EXPECT().ReplaceCV(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cv models.CV) error {
			require.Equal(t, "d1", cv.ID)
			require.Len(t, cv.Education, 2)
			return nil
		})

	rr := doJSON(t, env.router(), http.MethodPost, "/v1/cv/education", map[string]any{
		"degree":      "MSc",
		"institution": "Sapienza",
		"startDate":   "2023-09-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	body := decode[cvBody](t, rr)
	require.Len(t, body.CV.Education, 2)

	added := body.CV.Education[1]
	require.NotEmpty(t, added.ID)
	require.Equal(t, "MSc", added.Degree)
	require.Equal(t, models.DefaultEducationColor, added.Color)
}

func TestRouter_Validation(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"skill_bad_category", http.MethodPost, "/v1/cv/skills", `{"name":"Go","level":5,"category":"magic"}`},
		{"language_bad_proficiency", http.MethodPost, "/v1/cv/languages", `{"name":"Inglese","proficiency":"expert"}`},
		{"education_missing_degree", http.MethodPost, "/v1/cv/education", `{"institution":"X"}`},
		{"experience_missing_company", http.MethodPost, "/v1/cv/experience", `{"position":"Dev"}`},
		{"unknown_field", http.MethodPut, "/v1/cv/personal-info", `{"name":"Anna","nickname":"A"}`},
		{"broken_json", http.MethodPut, "/v1/cv/personal-info", `{"name":`},
		{"bad_index", http.MethodDelete, "/v1/cv/skills/abc", ``},
		{"edit_mode_missing", http.MethodPut, "/v1/cv/edit-mode", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil)
			// ReplaceCV не ожидается: gomock провалит тест при вызове.

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}

			rr := do(t, env.router(), tt.method, tt.path, body)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			require.Equal(t, "invalid_argument", decode[errBody](t, rr).Error.Code)
		})
	}
}

func TestRouter_NoOpMutationsDoNotSave(t *testing.T) {
	env := newEnv(t)
	h := env.router()

	env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil)

	rr := do(t, h, http.MethodDelete, "/v1/cv/education/7", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, decode[cvBody](t, rr).CV.Education, 1)

	rr = doJSON(t, h, http.MethodPut, "/v1/cv/education/missing", map[string]any{
		"degree": "PhD", "institution": "X",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "BSc", decode[cvBody](t, rr).CV.Education[0].Degree)
}

func TestRouter_UpdateAndRemove(t *testing.T) {
	env := newEnv(t)
	h := env.router()

	env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil)
	env.cvs.EXPECT().ReplaceCV(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	rr := doJSON(t, h, http.MethodPut, "/v1/cv/education/e1", map[string]any{
		"degree": "BSc Informatica", "institution": "Politecnico",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	edu := decode[cvBody](t, rr).CV.Education
	require.Equal(t, "e1", edu[0].ID)
	require.Equal(t, "BSc Informatica", edu[0].Degree)

	rr = do(t, h, http.MethodDelete, "/v1/cv/education/0", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, decode[cvBody](t, rr).CV.Education)
}

func TestRouter_SaveFailure(t *testing.T) {
	env := newEnv(t)

	env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil)
	env.cvs.EXPECT().ReplaceCV(gomock.Any(), gomock.Any()).Return(errors.New("write conflict"))

	rr := doJSON(t, env.router(), http.MethodPut, "/v1/cv/personal-info", map[string]any{"name": "Anna B."})
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	eb := decode[errBody](t, rr)
	require.Equal(t, "save_failed", eb.Error.Code)
	require.Equal(t, "Errore nel salvataggio", eb.Error.Message)
}

func TestRouter_UpdatePersonalInfo_FreeText(t *testing.T) {
	env := newEnv(t)

	env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil)
	env.cvs.EXPECT().ReplaceCV(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cv models.CV) error {
			require.Equal(t, "profile_images/u1.jpg", cv.PersonalInfo.PhotoURL)
			require.Equal(t, "non un indirizzo", cv.PersonalInfo.Email)
			return nil
		})

	rr := doJSON(t, env.router(), http.MethodPut, "/v1/cv/personal-info", map[string]any{
		"name":     "Anna",
		"email":    "non un indirizzo",
		"phone":    "+39 (02) interno 12",
		"summary":  strings.Repeat("Backend, API e dati. ", 400),
		"photoURL": "profile_images/u1.jpg",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	info := decode[cvBody](t, rr).CV.PersonalInfo
	require.Equal(t, "profile_images/u1.jpg", info.PhotoURL)
	require.Equal(t, "+39 (02) interno 12", info.Phone)
}

func TestRouter_StepsAndEditMode(t *testing.T) {
	env := newEnv(t)
	h := env.router()

	env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil)

	type stepBody struct {
		Step int `json:"step"`
	}

	rr := do(t, h, http.MethodPost, "/v1/cv/step/prev", nil)
	require.Equal(t, 0, decode[stepBody](t, rr).Step)

	for i := 1; i <= 7; i++ {
		rr = do(t, h, http.MethodPost, "/v1/cv/step/next", nil)
	}
	require.Equal(t, service.LastStep, decode[stepBody](t, rr).Step)

	rr = doJSON(t, h, http.MethodPut, "/v1/cv/edit-mode", map[string]any{"editMode": true})
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, decode[cvBody](t, rr).EditMode)
}

func TestRouter_Preview(t *testing.T) {
	env := newEnv(t)

	env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil)

	rr := do(t, env.router(), http.MethodGet, "/v1/cv/preview", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Education []struct {
			Title string `json:"title"`
			Start string `json:"start"`
			End   string `json:"end"`
			Color string `json:"color"`
		} `json:"education"`
		IsComplete bool `json:"isComplete"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Education, 1)
	require.Equal(t, "BSc", body.Education[0].Title)
	require.Equal(t, "09/2019", body.Education[0].Start)
	require.Equal(t, "Presente", body.Education[0].End)
	require.Equal(t, "orange", body.Education[0].Color)
	require.True(t, body.IsComplete)
}

func TestRouter_SignOut(t *testing.T) {
	env := newEnv(t)
	h := env.router()

	env.cvs.EXPECT().CVByUserID(gomock.Any(), "u1").Return(existingCV(), nil).Times(2)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/cv", nil).Code)
	require.Equal(t, 1, env.sessions.Len())

	rr := do(t, h, http.MethodPost, "/v1/session/signout", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, 0, env.sessions.Len())

	// Новая сессия перечитывает резюме.
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/cv", nil).Code)
}

func TestRouter_Users(t *testing.T) {
	env := newEnv(t)
	h := env.router()

	profile := &models.UserProfile{UserID: "u1", Name: "Anna", Email: "u1@example.com"}

	env.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.UserProfile) error {
			require.Equal(t, "u1", p.UserID)
			require.Equal(t, "u1@example.com", p.Email) // из токена
			return nil
		})
	env.users.EXPECT().UserByID(gomock.Any(), "u1").Return(profile, nil)

	rr := doJSON(t, h, http.MethodPost, "/v1/users/me", map[string]any{"name": "Anna"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Equal(t, "Anna", decode[models.UserProfile](t, rr).Name)

	env.users.EXPECT().UserByID(gomock.Any(), "u1").Return(nil, storage.ErrNotFound)
	rr = do(t, h, http.MethodGet, "/v1/users/me", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, h, http.MethodPost, "/v1/users/me", map[string]any{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_UploadPhoto(t *testing.T) {
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x01}, 64)...)

	t.Run("ok", func(t *testing.T) {
		env := newEnv(t)

		env.users.EXPECT().UserByID(gomock.Any(), "u1").Return(&models.UserProfile{UserID: "u1"}, nil)
		env.photos.EXPECT().UploadPhoto(gomock.Any(), "u1", gomock.Any(), int64(len(jpeg))).
			Return("https://cdn.example.com/profile_images/u1.jpg", nil)
		env.users.EXPECT().SetUserPhotoURL(gomock.Any(), "u1", "https://cdn.example.com/profile_images/u1.jpg").Return(nil)

		rr := do(t, env.router(), http.MethodPut, "/v1/users/me/photo", bytes.NewReader(jpeg))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var body struct {
			PhotoURL string `json:"photoURL"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Equal(t, "https://cdn.example.com/profile_images/u1.jpg", body.PhotoURL)
	})

	t.Run("not_jpeg", func(t *testing.T) {
		env := newEnv(t)

		rr := do(t, env.router(), http.MethodPut, "/v1/users/me/photo", strings.NewReader("GIF89a....."))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("too_large", func(t *testing.T) {
		env := newEnv(t)

		big := append(append([]byte{}, jpeg...), bytes.Repeat([]byte{0x02}, 2048)...)
		rr := do(t, env.router(), http.MethodPut, "/v1/users/me/photo", bytes.NewReader(big))
		require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("no_profile", func(t *testing.T) {
		env := newEnv(t)

		env.users.EXPECT().UserByID(gomock.Any(), "u1").Return(nil, storage.ErrNotFound)

		rr := do(t, env.router(), http.MethodPut, "/v1/users/me/photo", bytes.NewReader(jpeg))
		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Equal(t, "not_found", decode[errBody](t, rr).Error.Code)
	})

	t.Run("blob_failure", func(t *testing.T) {
		env := newEnv(t)

		env.users.EXPECT().UserByID(gomock.Any(), "u1").Return(&models.UserProfile{UserID: "u1"}, nil)
		env.photos.EXPECT().UploadPhoto(gomock.Any(), "u1", gomock.Any(), gomock.Any()).Return("", errors.New("bucket gone"))

		rr := do(t, env.router(), http.MethodPut, "/v1/users/me/photo", bytes.NewReader(jpeg))
		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		require.Equal(t, "upload_failed", decode[errBody](t, rr).Error.Code)
	})
}

func TestRouter_Improve(t *testing.T) {
	env := newEnv(t)
	env.deps.Improver = fakeImprover{out: "Ho realizzato un sistema."}

	rr := doJSON(t, env.router(), http.MethodPost, "/v1/ai/improve", map[string]any{
		"text": "ho fatto un sistema", "context": "Descrizione",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Ho realizzato un sistema.", body.Text)

	env.deps.Improver = fakeImprover{err: completion.ErrCompletion}
	rr = doJSON(t, env.router(), http.MethodPost, "/v1/ai/improve", map[string]any{"text": "x"})
	require.Equal(t, http.StatusBadGateway, rr.Code)

	rr = doJSON(t, env.router(), http.MethodPost, "/v1/ai/improve", map[string]any{"text": ""})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func readLines(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var out []map[string]any
	sc := bufio.NewScanner(rr.Body)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	require.NoError(t, sc.Err())

	return out
}

func TestRouter_Transcribe_StreamsPartials(t *testing.T) {
	env := newEnv(t)
	env.deps.Recognizer = fakeRecognizer{
		perm:     speech.PermissionAuthorized,
		partials: []string{"Sviluppo", "Sviluppo di API"},
	}

	rr := do(t, env.router(), http.MethodPost, "/v1/speech/transcribe", strings.NewReader("RIFF...."))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/x-ndjson", rr.Header().Get("Content-Type"))

	lines := readLines(t, rr)
	require.Len(t, lines, 3)
	require.Equal(t, "Sviluppo", lines[0]["transcript"])
	require.Equal(t, false, lines[0]["final"])
	require.Equal(t, "Sviluppo di API", lines[2]["transcript"])
	require.Equal(t, true, lines[2]["final"])
}

func TestRouter_Transcribe_PermissionDenied(t *testing.T) {
	env := newEnv(t)
	env.deps.Recognizer = fakeRecognizer{perm: speech.PermissionDenied}

	rr := do(t, env.router(), http.MethodPost, "/v1/speech/transcribe", strings.NewReader("RIFF"))
	require.Equal(t, http.StatusBadGateway, rr.Code)

	eb := decode[errBody](t, rr)
	require.Equal(t, "transcription_failed", eb.Error.Code)
	require.Equal(t, speech.PermissionDenied.Message(), eb.Error.Message)
}

func TestRouter_Transcribe_EngineFailureAfterPartial(t *testing.T) {
	env := newEnv(t)
	env.deps.Recognizer = fakeRecognizer{
		perm:     speech.PermissionAuthorized,
		partials: []string{"Sviluppo"},
		err:      errors.New("stream reset"),
	}

	rr := do(t, env.router(), http.MethodPost, "/v1/speech/transcribe", strings.NewReader("RIFF"))
	require.Equal(t, http.StatusOK, rr.Code)

	lines := readLines(t, rr)
	require.Len(t, lines, 2)
	require.Equal(t, "Sviluppo", lines[0]["transcript"])

	errObj, ok := lines[1]["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "transcription_failed", errObj["code"])
	require.NotContains(t, errObj["message"], "stream reset")
}
