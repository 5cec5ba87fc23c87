package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	gameID := ""
	if payloadReq.Game != nil {
		gameID = payloadReq.Game.ID
	}

	game, err := that.games.GetOrCreateGame(ctx, gameID)
	if err != nil {
		log.Error("failed to get or create game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to get or create game")
	}

	payloadResp := Payload{
		Game:  game,
		Theme: that.prefs.Load(ctx),
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("client connected to game", "game_id", game.ID)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return that.sendErrorResponse(bufrw, msg.Action, "game id is required")
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(bufrw, msg.Action, "cell is required")
	}

	game, outcome, err := that.games.ApplyMove(ctx, payloadReq.Game.ID, *payloadReq.Cell)
	if err != nil {
		log.Error("failed to apply move", "game_id", payloadReq.Game.ID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to apply move")
	}

	accepted := outcome.Accepted()
	payloadResp := Payload{
		Game:     game,
		Accepted: &accepted,
	}

	return that.sendMessage(bufrw, msg.Action, payloadResp)
}

func (that *Server) handleGameRestart(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameRestart")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return that.sendErrorResponse(bufrw, msg.Action, "game id is required")
	}

	game, err := that.games.Restart(ctx, payloadReq.Game.ID)
	if err != nil {
		log.Error("failed to restart game", "game_id", payloadReq.Game.ID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to restart game")
	}

	return that.sendMessage(bufrw, msg.Action, Payload{Game: game})
}

func (that *Server) handleThemeGet(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	return that.sendMessage(bufrw, msg.Action, Payload{Theme: that.prefs.Load(ctx)})
}

func (that *Server) handleThemeSet(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	that.prefs.Save(ctx, payloadReq.Theme)

	// respond with the effective theme, which is the default when the
	// requested one was dropped
	return that.sendMessage(bufrw, msg.Action, Payload{Theme: that.prefs.Load(ctx)})
}

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}

func (that *Server) sendMessage(bufrw *bufio.ReadWriter, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	f := frame{
		isFin:   true,
		opCode:  opText,
		length:  uint64(len(responseBytes)),
		payload: responseBytes,
	}

	if err = writeFrame(bufrw, f); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(bufrw *bufio.ReadWriter, action, message string) error {
	return that.sendMessage(bufrw, action, Payload{Error: message})
}
