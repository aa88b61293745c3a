// Package api provides HTTP API handlers for handcount.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/ayusman/handcount/internal/config"
	"github.com/ayusman/handcount/internal/store"
)

// Counter is the live part of the application the settings API controls.
type Counter interface {
	MaxHands() int
	SetMaxHands(n int) error
	CameraID() int
}

// SettingsHandler serves GET and PUT /api/settings.
type SettingsHandler struct {
	store   *store.Store
	counter Counter
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(s *store.Store, c Counter) *SettingsHandler {
	return &SettingsHandler{store: s, counter: c}
}

type settingsResponse struct {
	MaxHands int `json:"max_hands"`
	CameraID int `json:"camera_id"`
}

// Fields are pointers so a PUT can change one setting and leave the other.
type updateSettingsRequest struct {
	MaxHands *int `json:"max_hands"`
	CameraID *int `json:"camera_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read settings")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CameraID != nil && *req.CameraID < 0 {
		writeError(w, http.StatusBadRequest, "camera_id must not be negative")
		return
	}

	if req.MaxHands != nil && !config.ValidMaxHands(*req.MaxHands) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("max_hands must be between %d and %d", config.MinHands, config.MaxHands))
		return
	}

	if req.MaxHands != nil {
		if err := h.counter.SetMaxHands(*req.MaxHands); err != nil {
			log.Printf("api: save max hands: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}

	// The camera is opened once at startup, so a new device applies on restart.
	if req.CameraID != nil {
		if err := h.store.Settings().SetInt(store.KeyCameraID, *req.CameraID); err != nil {
			log.Printf("api: save camera id: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}

	resp, err := h.current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read settings")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SettingsHandler) current() (settingsResponse, error) {
	resp := settingsResponse{
		MaxHands: h.counter.MaxHands(),
		CameraID: h.counter.CameraID(),
	}

	id, err := h.store.Settings().GetInt(store.KeyCameraID)
	switch {
	case err == nil:
		resp.CameraID = id
	case !errors.Is(err, store.ErrNotFound):
		return resp, err
	}
	return resp, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
