package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"gocv.io/x/gocv"

	"github.com/ayusman/handcount/internal/app"
	"github.com/ayusman/handcount/internal/capture"
	"github.com/ayusman/handcount/internal/detector"
	"github.com/ayusman/handcount/internal/server"
	"github.com/ayusman/handcount/internal/store"
)

func TestE2E_CountingWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	frame := gocv.NewMatWithSize(capture.DefaultHeight, capture.DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame.Close()

	mockDetector := detector.NewMockDetector()
	mockDetector.SetHands([]detector.HandLandmarks{
		detector.CountingLandmarks(3),
		detector.CountingLandmarks(2),
	})

	application := app.New(app.Config{
		Store:    s,
		Camera:   capture.NewMockCamera([]*gocv.Mat{&frame}, true),
		Detector: mockDetector,
		FPS:      30,
		MaxHands: 2,
	})
	if err := application.LoadSettings(); err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if err := application.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer application.Stop()

	ts := httptest.NewServer(server.New(server.Config{Store: s, Counter: application}))
	defer ts.Close()

	client := ts.Client()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/frames"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	// waitForCount reads frames until one carries want or the deadline passes.
	waitForCount := func(t *testing.T, want int) app.Frame {
		t.Helper()

		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		for {
			var f app.Frame
			if err := conn.ReadJSON(&f); err != nil {
				t.Fatalf("ReadJSON() error = %v", err)
			}
			if f.Count != nil && *f.Count == want {
				return f
			}
		}
	}

	t.Run("TwoHandsSum", func(t *testing.T) {
		f := waitForCount(t, 5)
		if len(f.Hands) != 2 {
			t.Errorf("len(hands) = %d, want 2", len(f.Hands))
		}
	})

	t.Run("LowerMaxHands", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/settings", strings.NewReader(`{"max_hands": 1}`))
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("PUT /api/settings error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		f := waitForCount(t, 3)
		if len(f.Hands) != 1 {
			t.Errorf("len(hands) = %d, want 1", len(f.Hands))
		}
	})

	t.Run("NoHandsHidesCount", func(t *testing.T) {
		mockDetector.SetHands(nil)

		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		for {
			var f app.Frame
			if err := conn.ReadJSON(&f); err != nil {
				t.Fatalf("ReadJSON() error = %v", err)
			}
			if f.Count == nil && len(f.Hands) == 0 {
				return
			}
		}
	})

	t.Run("SettingsPersisted", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/settings")
		if err != nil {
			t.Fatalf("GET /api/settings error = %v", err)
		}
		defer resp.Body.Close()

		var settings struct {
			MaxHands int `json:"max_hands"`
		}
		json.NewDecoder(resp.Body).Decode(&settings)
		if settings.MaxHands != 1 {
			t.Errorf("max_hands = %d, want 1", settings.MaxHands)
		}

		stored, err := s.Settings().GetInt(store.KeyMaxHands)
		if err != nil || stored != 1 {
			t.Errorf("stored max_hands = %d (%v), want 1", stored, err)
		}
	})

	t.Run("HealthStillWorks", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("GET /api/health error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed while counting")
		}
	})
}

func TestE2E_RestartRestoresSettings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	dbPath := filepath.Join(t.TempDir(), "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	first := app.New(app.Config{
		Store:    s,
		Camera:   capture.NewMockCamera(nil, false),
		Detector: detector.NewMockDetector(),
	})
	if err := first.SetMaxHands(4); err != nil {
		t.Fatalf("SetMaxHands() error = %v", err)
	}
	s.Close()

	s, err = store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() reopen error = %v", err)
	}
	defer s.Close()

	second := app.New(app.Config{
		Store:    s,
		Camera:   capture.NewMockCamera(nil, false),
		Detector: detector.NewMockDetector(),
	})
	if err := second.LoadSettings(); err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if second.MaxHands() != 4 {
		t.Errorf("MaxHands() = %d, want 4", second.MaxHands())
	}

	hands := []detector.HandLandmarks{
		detector.OpenPalmLandmarks(),
		detector.OpenPalmLandmarks(),
		detector.FistLandmarks(),
		detector.CountingLandmarks(1),
	}
	f := second.Process(hands)
	if f.Count == nil || *f.Count != 11 {
		t.Errorf("Count = %v, want 11", f.Count)
	}
}
