package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/handcount/internal/store"
)

type fakeCounter struct {
	maxHands int
	cameraID int
	err      error
}

func (c *fakeCounter) MaxHands() int { return c.maxHands }
func (c *fakeCounter) CameraID() int { return c.cameraID }

func (c *fakeCounter) SetMaxHands(n int) error {
	if c.err != nil {
		return c.err
	}
	c.maxHands = n
	return nil
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func decodeSettings(t *testing.T, rec *httptest.ResponseRecorder) settingsResponse {
	t.Helper()

	var resp settingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestSettingsHandler_Get(t *testing.T) {
	s := setupTestStore(t)
	h := NewSettingsHandler(s, &fakeCounter{maxHands: 2, cameraID: 0})

	t.Run("falls back to the running camera", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}

		got := decodeSettings(t, rec)
		if got.MaxHands != 2 || got.CameraID != 0 {
			t.Errorf("got %+v, want max hands 2 and camera 0", got)
		}
	})

	t.Run("reports the stored camera", func(t *testing.T) {
		s.Settings().SetInt(store.KeyCameraID, 1)

		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := decodeSettings(t, rec); got.CameraID != 1 {
			t.Errorf("camera_id = %d, want 1", got.CameraID)
		}
	})
}

func TestSettingsHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		counterErr error
		wantStatus int
		wantMax    int
	}{
		{"valid max hands", `{"max_hands": 4}`, nil, http.StatusOK, 4},
		{"lower bound", `{"max_hands": 1}`, nil, http.StatusOK, 1},
		{"zero rejected", `{"max_hands": 0}`, nil, http.StatusBadRequest, 2},
		{"above range rejected", `{"max_hands": 5}`, nil, http.StatusBadRequest, 2},
		{"negative camera rejected", `{"camera_id": -1}`, nil, http.StatusBadRequest, 2},
		{"camera only", `{"camera_id": 3}`, nil, http.StatusOK, 2},
		{"malformed body", `{"max_hands":`, nil, http.StatusBadRequest, 2},
		{"store failure", `{"max_hands": 3}`, errors.New("disk full"), http.StatusInternalServerError, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := &fakeCounter{maxHands: 2, err: tt.counterErr}
			h := NewSettingsHandler(setupTestStore(t), counter)

			req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if counter.maxHands != tt.wantMax {
				t.Errorf("max hands = %d, want %d", counter.maxHands, tt.wantMax)
			}
		})
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	h := NewSettingsHandler(setupTestStore(t), &fakeCounter{maxHands: 2})

	for _, method := range []string{http.MethodPost, http.MethodDelete, http.MethodPatch} {
		req := httptest.NewRequest(method, "/api/settings", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}
