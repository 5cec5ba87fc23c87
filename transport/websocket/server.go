package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pixelforge/tictactoe-backend/internal/engine"
	"github.com/pixelforge/tictactoe-backend/internal/entity"
)

type gameManager interface {
	GetOrCreateGame(ctx context.Context, id string) (*entity.Game, error)
	ApplyMove(ctx context.Context, gameID string, cell int) (*entity.Game, engine.MoveOutcome, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
}

type preferenceStore interface {
	Load(ctx context.Context) string
	Save(ctx context.Context, theme string)
}

type handlerFunc func(ctx context.Context, message *Message, bufrw *bufio.ReadWriter) error

// Server speaks RFC 6455 over a hijacked HTTP connection and forwards
// client actions into the game manager and the preference store. After
// every handled action the full game state (and theme, where relevant)
// is written back so the client can re-render.
type Server struct {
	logger *slog.Logger
	games  gameManager
	prefs  preferenceStore

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameManager, prefs preferenceStore) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		prefs:  prefs,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers["connect"] = server.handleConnect
	server.handlers["game:turn"] = server.handleGameTurn
	server.handlers["game:restart"] = server.handleGameRestart
	server.handlers["theme:get"] = server.handleThemeGet
	server.handlers["theme:set"] = server.handleThemeSet

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if req.Header.Get("Upgrade") != "websocket" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	key := req.Header.Get("Sec-WebSocket-Key")

	writer.Header().Set("Upgrade", "websocket")
	writer.Header().Set("Connection", "Upgrade")
	writer.Header().Set("Sec-WebSocket-Accept", GenerateAcceptKey(key))
	writer.WriteHeader(http.StatusSwitchingProtocols)

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking")
		return
	}

	conn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(ctx, bufrw); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until the
// connection drops.
func (that *Server) handleMessages(ctx context.Context, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleMessages")

	for {
		reqBody, err := readRequest(bufrw)
		if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		if reqBody == nil {
			// control frame or close, nothing to dispatch
			return nil
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, &message, bufrw); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
