package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/cv-service/internal/metrics"
)

// Metrics пишет длительность запроса в metrics.HTTPDuration.
// Метка route - шаблон chi ("/v1/cv/skills/{id}"), чтобы не раздувать кардинальность.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			metrics.HTTPDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(sw.code())).
				Observe(time.Since(start).Seconds())
		})
	}
}
