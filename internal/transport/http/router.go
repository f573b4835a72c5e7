package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/cv-service/internal/transport/http/handlers"
	"github.com/pribylovaa/cv-service/internal/transport/http/middleware"
)

// Options - параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// StreamTimeout - дедлайн потоковой расшифровки речи; 0 - без дедлайна.
	StreamTimeout time.Duration
	BasePath      string // по умолчанию "/v1".
	Verifier      middleware.TokenVerifier
}

// streamPaths - эндпойнты с потоковым (NDJSON) ответом.
var streamPaths = []string{"/speech/transcribe"}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(deps handlers.Deps, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний). Recover внутри Logging/Metrics:
	// запрос с panic попадает в лог и метрики как 500.
	root.Use(
		middleware.RequestID(), // до логирования: request_id попадает в логгер
		middleware.Logging(opts.Logger),
		middleware.Metrics(),
		middleware.Recover(),
		middleware.Timeout(middleware.TimeoutPolicy{
			Default: opts.Timeout,
			Stream:  opts.StreamTimeout,
			Streams: streamPaths,
		}),
	)

	h := handlers.New(deps)

	base := opts.BasePath
	if base == "" {
		base = "/v1"
	}

	root.Route(base, func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.Verifier), middleware.Recover())
		registerRoutes(r, h)
	})

	return root
}

// registerRoutes - единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// cv
	r.Get("/cv", h.GetCV)
	r.Get("/cv/preview", h.GetPreview)
	r.Put("/cv/personal-info", h.UpdatePersonalInfo)
	r.Put("/cv/edit-mode", h.SetEditMode)
	r.Post("/cv/step/next", h.NextStep)
	r.Post("/cv/step/prev", h.PrevStep)

	r.Post("/cv/education", h.AddEducation())
	r.Put("/cv/education/{id}", h.UpdateEducation())
	r.Delete("/cv/education/{index}", h.RemoveEducation())

	r.Post("/cv/experience", h.AddExperience())
	r.Put("/cv/experience/{id}", h.UpdateExperience())
	r.Delete("/cv/experience/{index}", h.RemoveExperience())

	r.Post("/cv/skills", h.AddSkill())
	r.Put("/cv/skills/{id}", h.UpdateSkill())
	r.Delete("/cv/skills/{index}", h.RemoveSkill())

	r.Post("/cv/languages", h.AddLanguage())
	r.Put("/cv/languages/{id}", h.UpdateLanguage())
	r.Delete("/cv/languages/{index}", h.RemoveLanguage())

	// users
	r.Post("/users/me", h.RegisterMe)
	r.Get("/users/me", h.GetMe)
	r.Put("/users/me/photo", h.UploadPhoto)

	// ai
	r.Post("/ai/improve", h.Improve)
	r.Post("/speech/transcribe", h.Transcribe)

	// session
	r.Post("/session/signout", h.SignOut)
}
