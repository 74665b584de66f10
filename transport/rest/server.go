package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
)

type gameService interface {
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type Server struct {
	logger *slog.Logger
	games  gameService
	router *chi.Mux
}

func New(logger *slog.Logger, games gameService) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		games:  games,
		router: chi.NewRouter(),
	}

	server.router.Use(chimw.RequestID)
	server.router.Use(chimw.Recoverer)
	server.router.Use(chimw.Timeout(10 * time.Second))

	server.router.Get("/ping", server.handlePing)
	server.router.Get("/difficulties", server.handleDifficulties)
	server.router.Get("/games/{id}", server.handleGetGame)
	server.router.Delete("/games/{id}", server.handleDeleteGame)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) handleDifficulties(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, entity.Difficulties(r.URL.Query().Get("lang")))
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeJSON(w, http.StatusNotFound, map[string]string{"error": apperror.ErrGameNotFound.Error()})
	case err != nil:
		that.logger.Error("failed to get game", "error", err, "request_id", chimw.GetReqID(r.Context()))
		that.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	default:
		that.writeJSON(w, http.StatusOK, game)
	}
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeJSON(w, http.StatusNotFound, map[string]string{"error": apperror.ErrGameNotFound.Error()})
	case err != nil:
		that.logger.Error("failed to delete game", "error", err, "request_id", chimw.GetReqID(r.Context()))
		that.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
