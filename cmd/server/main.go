package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notekeep-server/internal/config"
	"notekeep-server/internal/handler"
	"notekeep-server/internal/middleware"
	"notekeep-server/internal/repository"
	"notekeep-server/internal/service"
	"notekeep-server/pkg/logger"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("server", cfg.Logging.Level)

	client, err := kivik.New("couch", cfg.Database.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to CouchDB")
	}

	ctx := context.Background()

	exists, err := client.DBExists(ctx, cfg.Database.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to check database existence")
	}
	if !exists {
		if err := client.CreateDB(ctx, cfg.Database.Name); err != nil {
			log.Fatal().Err(err).Msg("failed to create database")
		}
		log.Info().Str("database", cfg.Database.Name).Msg("created database")
	}

	// Username lookups go through a mango selector; index the field so they
	// don't degrade into full scans.
	db := client.DB(cfg.Database.Name)
	if err := db.CreateIndex(ctx, "", "username-idx", map[string]interface{}{
		"fields": []string{"username"},
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to create username index")
	}

	userRepo := repository.NewUserRepository(client, cfg.Database.Name)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, log.With().Str("component", "auth").Logger())
	userService := service.NewUserService(userRepo, log.With().Str("component", "user").Logger())
	noteService := service.NewNoteService(userRepo, log.With().Str("component", "note").Logger())

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	noteHandler := handler.NewNoteHandler(noteService)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/user/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	api.HandleFunc("/user/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/user/refresh-token", authHandler.Refresh).Methods("POST", "OPTIONS")
	api.HandleFunc("/user/check-username/{username}", userHandler.CheckUsername).Methods("GET", "OPTIONS")

	// Public user routes are registered above so they match before the
	// guarded subrouter takes over the /user prefix.
	user := api.PathPrefix("/user").Subrouter()
	user.Use(middleware.AuthMiddleware(cfg.JWT.Secret, userRepo))
	user.HandleFunc("", userHandler.UpdateProfile).Methods("PUT", "OPTIONS")
	user.HandleFunc("/password", userHandler.UpdatePassword).Methods("PUT", "OPTIONS")

	notes := api.PathPrefix("/notes").Subrouter()
	notes.Use(middleware.AuthMiddleware(cfg.JWT.Secret, userRepo))
	notes.HandleFunc("", noteHandler.Create).Methods("POST", "OPTIONS")
	notes.HandleFunc("", noteHandler.List).Methods("GET", "OPTIONS")
	notes.HandleFunc("/{noteId}", noteHandler.Get).Methods("GET", "OPTIONS")
	notes.HandleFunc("/{noteId}", noteHandler.Update).Methods("PUT", "OPTIONS")
	notes.HandleFunc("/{noteId}", noteHandler.Delete).Methods("DELETE", "OPTIONS")

	r.HandleFunc("/health", healthHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Server.Env).Msg("starting notekeep server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"notekeep-server"}`))
}
