package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
)

type stubGames map[string]*entity.Game

func (that stubGames) GetGame(_ context.Context, gameID string) (*entity.Game, error) {
	if gameID == "broken" {
		return nil, errors.New("redis down")
	}

	game, ok := that[gameID]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return game, nil
}

func (that stubGames) DeleteGame(_ context.Context, gameID string) error {
	if _, ok := that[gameID]; !ok {
		return apperror.ErrGameNotFound
	}
	delete(that, gameID)

	return nil
}

func serve(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	return serveMethod(t, http.MethodGet, target)
}

func serveMethod(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := New(logger, stubGames{"g1": entity.NewGame("g1")})

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(method, target, nil))

	return recorder
}

func TestServer_Ping(t *testing.T) {
	recorder := serve(t, "/ping")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestServer_Difficulties(t *testing.T) {
	t.Run("English labels", func(t *testing.T) {
		// When: the difficulty list is requested in English
		recorder := serve(t, "/difficulties?lang=en")

		// Then: all five levels are listed with their board sizes
		require.Equal(t, http.StatusOK, recorder.Code)

		var difficulties []entity.Difficulty
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &difficulties))
		require.Len(t, difficulties, entity.MaxLevel)
		assert.Equal(t, "very easy", difficulties[0].Label)
		assert.Equal(t, 9, difficulties[4].BoardSize)
	})

	t.Run("Unknown language falls back to Chinese", func(t *testing.T) {
		recorder := serve(t, "/difficulties?lang=fr")

		var difficulties []entity.Difficulty
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &difficulties))
		assert.Equal(t, "中等", difficulties[2].Label)
	})
}

func TestServer_GetGame(t *testing.T) {
	t.Run("Known game", func(t *testing.T) {
		recorder := serve(t, "/games/g1")

		require.Equal(t, http.StatusOK, recorder.Code)

		var game entity.Game
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &game))
		assert.Equal(t, "g1", game.ID)
		assert.Equal(t, entity.StatusWaiting, game.Status)
	})

	t.Run("Unknown game", func(t *testing.T) {
		recorder := serve(t, "/games/missing")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Storage failure", func(t *testing.T) {
		recorder := serve(t, "/games/broken")

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestServer_DeleteGame(t *testing.T) {
	t.Run("Known game", func(t *testing.T) {
		recorder := serveMethod(t, http.MethodDelete, "/games/g1")

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("Unknown game", func(t *testing.T) {
		recorder := serveMethod(t, http.MethodDelete, "/games/missing")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
