package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrNoGame        = errors.New("no game on this connection")
	ErrGameAttached  = errors.New("game is already played on another connection")
)

func (that *Server) handleNewGame(ctx context.Context, client *connection, payload RequestPayload) error {
	level := payload.Level
	if level == 0 {
		level = entity.DefaultLevel
	}

	game, err := that.uGame.NewGame(ctx, level)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.attach(client, game.ID); err != nil {
		return err
	}

	return that.send(client, actionNewGame, ResponsePayload{Game: game})
}

// handleJoinGame attaches the connection to an existing game, e.g. after a reconnect.
func (that *Server) handleJoinGame(ctx context.Context, client *connection, payload RequestPayload) error {
	game, err := that.uGame.GetGame(ctx, payload.GameID)
	if err != nil {
		return fmt.Errorf("failed to join game: %w", err)
	}

	if err = that.attach(client, game.ID); err != nil {
		return err
	}

	return that.send(client, actionJoinGame, ResponsePayload{Game: game})
}

// handleStartGame starts the connection's game, creating one first if there is none.
func (that *Server) handleStartGame(ctx context.Context, client *connection, payload RequestPayload) error {
	level := payload.Level

	if client.gameID == "" {
		game, err := that.uGame.NewGame(ctx, entity.DefaultLevel)
		if err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}

		if err = that.attach(client, game.ID); err != nil {
			return err
		}
	}

	if level == 0 {
		current, err := that.uGame.GetGame(ctx, client.gameID)
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}
		level = current.Level
	}

	game, err := that.uGame.StartGame(ctx, client.gameID, level)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return that.send(client, actionStartGame, ResponsePayload{Game: game})
}

func (that *Server) handleDifficulty(ctx context.Context, client *connection, payload RequestPayload) error {
	if client.gameID == "" {
		return ErrNoGame
	}

	game, err := that.uGame.ChangeDifficulty(ctx, client.gameID, payload.Level)
	if err != nil {
		return fmt.Errorf("failed to change difficulty: %w", err)
	}

	return that.send(client, actionDifficulty, ResponsePayload{Game: game})
}

func (that *Server) handleGameState(ctx context.Context, client *connection, _ RequestPayload) error {
	if client.gameID == "" {
		return ErrNoGame
	}

	game, err := that.uGame.GetGame(ctx, client.gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	return that.send(client, actionGameState, ResponsePayload{Game: game})
}

func (that *Server) handlePointerDown(ctx context.Context, client *connection, payload RequestPayload) error {
	if client.gameID == "" {
		return ErrNoGame
	}

	game, err := that.uGame.PointerDown(ctx, client.gameID, payload.Coord())
	if err != nil {
		return fmt.Errorf("failed to handle pointer down: %w", err)
	}

	return that.sendPointer(client, actionPointerDown, game)
}

func (that *Server) handlePointerMove(ctx context.Context, client *connection, payload RequestPayload) error {
	if client.gameID == "" {
		return ErrNoGame
	}

	game, err := that.uGame.PointerMove(ctx, client.gameID, payload.Coord())
	if err != nil {
		return fmt.Errorf("failed to handle pointer move: %w", err)
	}

	return that.sendPointer(client, actionPointerMove, game)
}

// handlePointerUp answers with the gesture's outcome; wins and failed attempts get their own action.
func (that *Server) handlePointerUp(ctx context.Context, client *connection, payload RequestPayload) error {
	if client.gameID == "" {
		return ErrNoGame
	}

	game, outcome, err := that.uGame.PointerUp(ctx, client.gameID)
	if err != nil {
		return fmt.Errorf("failed to handle pointer up: %w", err)
	}

	lang := payload.Lang
	if lang == "" {
		lang = client.lang
	}

	switch {
	case outcome.IsWon():
		return that.send(client, actionWon, ResponsePayload{
			Game:    game,
			Outcome: &outcome,
			Message: entity.OutcomeMessage(outcome, lang),
		})
	case outcome.IsFailedAttempt():
		return that.send(client, actionFailedAttempt, ResponsePayload{
			Game:    game,
			Outcome: &outcome,
			Message: entity.OutcomeMessage(outcome, lang),
		})
	}

	notice, err := ignoredNotice(game)
	if err != nil {
		return err
	}

	return that.send(client, actionPointerUp, ResponsePayload{
		Game:    game,
		Outcome: &outcome,
		Message: notice,
	})
}

// sendPointer replies to a pointer event, noting when the game was not in play and the event was ignored.
func (that *Server) sendPointer(client *connection, action string, game *entity.Game) error {
	notice, err := ignoredNotice(game)
	if err != nil {
		return err
	}

	return that.send(client, action, ResponsePayload{Game: game, Message: notice})
}

// ignoredNotice explains why a pointer event left a waiting or finished game untouched.
// A status outside the known ones is a real error.
func ignoredNotice(game *entity.Game) (string, error) {
	err := game.ConfirmOngoingState()
	switch {
	case err == nil:
		return "", nil
	case errors.Is(err, apperror.ErrGameIsNotStarted), errors.Is(err, apperror.ErrGameFinished):
		return err.Error(), nil
	default:
		return "", fmt.Errorf("failed to check game state: %w", err)
	}
}
