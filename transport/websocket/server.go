package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/transport"
)

const (
	maxMessageSize  = 4096
	shutdownTimeout = 5 * time.Second
)

var ErrUnknownAction = errors.New("unknown action")

type uGame interface {
	NewGame(ctx context.Context, human entity.Marker) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, payload *RequestPayload) (*entity.Game, error)

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader gorilla.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: gorilla.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionState] = server.handleState
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionReset] = server.handleReset

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // ctx is already done here
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP - upgrades the connection to WebSocket and serves it until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *gorilla.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if gorilla.IsCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)

			if err = that.sendMessage(conn, actionError, ResponsePayload{Error: err.Error(), Status: http.StatusBadRequest}); err != nil {
				return err
			}

			continue
		}

		response := that.process(ctx, &message)
		if err := that.sendMessage(conn, message.Action, response); err != nil {
			return err
		}
	}
}

func (that *Server) process(ctx context.Context, message *Message) ResponsePayload {
	handler, ok := that.handlers[message.Action]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownAction, message.Action)
		return ResponsePayload{Error: err.Error(), Status: http.StatusBadRequest}
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return ResponsePayload{Error: fmt.Sprintf("failed to unmarshal payload: %v", err), Status: http.StatusBadRequest}
		}
	}

	game, err := handler(ctx, &payload)
	if err != nil {
		status := transport.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			that.logger.Error("error processing message", "action", message.Action, "error", err)
		}

		return ResponsePayload{Game: transport.NewGameResponse(game), Error: err.Error(), Status: status}
	}

	return ResponsePayload{Game: transport.NewGameResponse(game), Status: http.StatusOK}
}

func (that *Server) sendMessage(conn *gorilla.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
