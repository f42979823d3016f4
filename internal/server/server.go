package server

import (
	"context"
	"github.com/CvitoyBamp/panelsynth/internal/config"
	"github.com/CvitoyBamp/panelsynth/internal/database"
	privateJWT "github.com/CvitoyBamp/panelsynth/internal/jwt"
	"github.com/go-chi/jwtauth/v5"
	"log"
	"net/http"
	"time"
)

// BackendServer serves datasets. DB and Auth are nil when the registry or
// token checks are disabled.
type BackendServer struct {
	Server *http.Server
	DB     *database.Postgres
	Auth   *jwtauth.JWTAuth

	cfg *config.Config
}

func DefaultBackendServer(ctx context.Context, cfg *config.Config) (*BackendServer, error) {
	bs := &BackendServer{cfg: cfg}

	if cfg.DatabaseURI != "" {
		db, err := database.Open(ctx, cfg.DatabaseURI)
		if err != nil {
			return nil, err
		}
		bs.DB = db
	}

	if cfg.SecretToken != "" {
		bs.Auth = privateJWT.NewTokenAuth(cfg.SecretToken)
	}

	bs.Server = &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           bs.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return bs, nil
}

func StartService(cfg *config.Config) {
	srv, err := DefaultBackendServer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("can't start server, error: %v", err)
	}
	if srv.DB != nil {
		defer srv.DB.Close()
	}

	log.Printf("serving datasets on %s (auth=%t, registry=%t)", cfg.RunAddress, srv.Auth != nil, srv.DB != nil)
	log.Fatal(srv.Server.ListenAndServe())
}
