package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	ws "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
)

type uGame interface {
	NewGame(ctx context.Context, level int) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	StartGame(ctx context.Context, gameID string, level int) (*entity.Game, error)
	ChangeDifficulty(ctx context.Context, gameID string, level int) (*entity.Game, error)

	PointerDown(ctx context.Context, gameID string, cell entity.Coord) (*entity.Game, error)
	PointerMove(ctx context.Context, gameID string, cell entity.Coord) (*entity.Game, error)
	PointerUp(ctx context.Context, gameID string) (*entity.Game, entity.Outcome, error)
}

// connection is one client's ordered event stream and the game it plays.
type connection struct {
	conn   *ws.Conn
	gameID string
	lang   string
}

type handlerFunc func(ctx context.Context, client *connection, payload RequestPayload) error

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader ws.Upgrader

	handlers map[string]handlerFunc

	mu       sync.Mutex
	attached map[string]*connection
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
		attached: make(map[string]*connection),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionJoinGame] = server.handleJoinGame
	server.handlers[actionStartGame] = server.handleStartGame
	server.handlers[actionDifficulty] = server.handleDifficulty
	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionPointerDown] = server.handlePointerDown
	server.handlers[actionPointerMove] = server.handlePointerMove
	server.handlers[actionPointerUp] = server.handlePointerUp

	return server
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWebSocket(ctx, w, r)
	})

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
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

func (that *Server) serveWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	// hijacked connections are not closed by http.Server.Shutdown
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	client := &connection{conn: conn, lang: req.URL.Query().Get("lang")}
	defer that.detach(client)
	if err = that.handleMessages(ctx, client); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// handleMessages processes the client's messages one at a time, in arrival order.
func (that *Server) handleMessages(ctx context.Context, client *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := client.conn.ReadJSON(&message); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(client, fmt.Errorf("%w: %s", ErrUnknownAction, message.Action))
			continue
		}

		payload, err := decodePayload(&message)
		if err == nil {
			err = handler(ctx, client, payload)
		}

		if err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			that.sendError(client, err)
		}
	}
}

func (that *Server) send(client *connection, action string, payload ResponsePayload) error {
	response, err := newResponse(action, payload)
	if err != nil {
		return err
	}

	if err = client.conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(client *connection, cause error) {
	if err := that.send(client, actionError, ResponsePayload{Error: cause.Error()}); err != nil {
		that.logger.Error("failed to send error", "error", err)
	}
}

// attach binds gameID to client. A game is driven by at most one connection at a time.
func (that *Server) attach(client *connection, gameID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if owner, ok := that.attached[gameID]; ok && owner != client {
		return fmt.Errorf("%w: %s", ErrGameAttached, gameID)
	}

	if client.gameID != "" && client.gameID != gameID {
		delete(that.attached, client.gameID)
	}

	that.attached[gameID] = client
	client.gameID = gameID

	return nil
}

func (that *Server) detach(client *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if client.gameID != "" && that.attached[client.gameID] == client {
		delete(that.attached, client.gameID)
	}
}
