package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pixelforge/tictactoe-backend/internal/entity"
)

type gameResponse struct {
	Game     *entity.Game `json:"game"`
	Accepted *bool        `json:"accepted,omitempty"`
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type themeBody struct {
	Theme string `json:"theme"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetOrCreateGame(r.Context(), "")
	if err != nil {
		that.logger.Error("failed to create game", "error", err)
		http.Error(w, "failed to create game", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusCreated, gameResponse{Game: game})
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	game, err := that.games.GetOrCreateGame(r.Context(), id)
	if err != nil {
		that.logger.Error("failed to get game", "game_id", id, "error", err)
		http.Error(w, "failed to get game", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game})
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		http.Error(w, "cell is required", http.StatusBadRequest)
		return
	}

	game, outcome, err := that.games.ApplyMove(r.Context(), id, *req.Cell)
	if err != nil {
		that.logger.Error("failed to apply move", "game_id", id, "error", err)
		http.Error(w, "failed to apply move", http.StatusInternalServerError)
		return
	}

	accepted := outcome.Accepted()
	that.writeJSON(w, http.StatusOK, gameResponse{Game: game, Accepted: &accepted})
}

func (that *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	game, err := that.games.Restart(r.Context(), id)
	if err != nil {
		that.logger.Error("failed to restart game", "game_id", id, "error", err)
		http.Error(w, "failed to restart game", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game})
}

func (that *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, themeBody{Theme: that.prefs.Load(r.Context())})
}

func (that *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "theme is required", http.StatusBadRequest)
		return
	}

	that.prefs.Save(r.Context(), req.Theme)

	// the effective theme may be the default when the request was dropped
	that.writeJSON(w, http.StatusOK, themeBody{Theme: that.prefs.Load(r.Context())})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
