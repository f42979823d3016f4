package server

import (
	"github.com/CvitoyBamp/panelsynth/internal/middlewares"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"net/http"
	"time"
)

// router for http services
func (bs *BackendServer) router() chi.Router {
	r := chi.NewRouter()

	r.Use(httprate.Limit(
		10,            // requests
		1*time.Second, // per duration
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "No more than 10 requests per second allowed\n", http.StatusTooManyRequests)
		}),
	))

	r.Use(middlewares.VerifyMiddleware(bs.Auth))

	r.Route("/api", func(r chi.Router) {
		r.Post("/token", bs.tokenHandler)
		r.Get("/dataset", bs.datasetHandler)
		r.Get("/runs", bs.runsHandler)
	})

	return r
}
