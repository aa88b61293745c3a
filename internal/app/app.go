// Package app runs handcount's capture, detection and counting loop.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/handcount/internal/capture"
	"github.com/ayusman/handcount/internal/config"
	"github.com/ayusman/handcount/internal/detector"
	"github.com/ayusman/handcount/internal/store"
)

// ErrInvalidMaxHands is returned when a hands-per-frame limit is out of range.
var ErrInvalidMaxHands = fmt.Errorf("max hands must be between %d and %d", config.MinHands, config.MaxHands)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	CameraID int
	FPS      int
	MaxHands int

	// Camera and Detector override the defaults when set.
	Camera   capture.Camera
	Detector detector.Detector

	DetectorConfig detector.Config
}

// App orchestrates frame capture, hand detection and finger counting.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	maxHands int
	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}
	doneCh   chan struct{}

	subMu       sync.Mutex
	subscribers map[chan Frame]struct{}
	onCount     func(count int, ok bool)
	onMaxHands  func(n int)
	last        Frame
	lastJPEG    []byte
}

// New creates a new App instance with the given configuration.
func New(cfg Config) *App {
	cfg.FPS = config.ClampFPS(cfg.FPS)
	if !config.ValidMaxHands(cfg.MaxHands) {
		cfg.MaxHands = detector.DefaultConfig().MaxHands
	}

	a := &App{
		config:      cfg,
		camera:      cfg.Camera,
		detector:    cfg.Detector,
		maxHands:    cfg.MaxHands,
		enabled:     true,
		subscribers: make(map[chan Frame]struct{}),
	}

	if a.camera == nil {
		a.camera = capture.NewCamera(cfg.CameraID)
	}

	if a.detector == nil {
		dc := cfg.DetectorConfig
		if dc == (detector.Config{}) {
			dc = detector.DefaultConfig()
		}
		if dc.MaxHands < config.MaxHands {
			// The service is asked for the upper bound; counting applies the live limit.
			dc.MaxHands = config.MaxHands
		}
		if mp, err := detector.NewMediaPipeDetector(dc); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	return a
}

// LoadSettings applies persisted settings over the configured defaults.
func (a *App) LoadSettings() error {
	if a.config.Store == nil {
		return nil
	}

	n, err := a.config.Store.Settings().GetInt(store.KeyMaxHands)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load max hands: %w", err)
	}
	if !config.ValidMaxHands(n) {
		log.Printf("Ignoring stored max hands %d", n)
		return nil
	}

	a.mu.Lock()
	a.maxHands = n
	a.mu.Unlock()

	log.Printf("Loaded settings: max hands %d", n)
	return nil
}

// SetEnabled enables or disables counting.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether counting is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// MaxHands returns the number of hands counted per frame.
func (a *App) MaxHands() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.maxHands
}

// SetMaxHands changes the hands-per-frame limit and persists it.
func (a *App) SetMaxHands(n int) error {
	if !config.ValidMaxHands(n) {
		return ErrInvalidMaxHands
	}

	if a.config.Store != nil {
		if err := a.config.Store.Settings().SetInt(store.KeyMaxHands, n); err != nil {
			return fmt.Errorf("save max hands: %w", err)
		}
	}

	a.mu.Lock()
	a.maxHands = n
	a.mu.Unlock()

	a.subMu.Lock()
	callback := a.onMaxHands
	a.subMu.Unlock()
	if callback != nil {
		callback(n)
	}

	return nil
}

// CameraID returns the video device in use.
func (a *App) CameraID() int {
	return a.camera.DeviceID()
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// OnCount registers a callback invoked whenever the displayed count changes.
// ok is false when the counter should be hidden.
func (a *App) OnCount(fn func(count int, ok bool)) {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	a.onCount = fn
}

// OnMaxHands registers a callback invoked after the hands-per-frame limit
// is changed through SetMaxHands.
func (a *App) OnMaxHands(fn func(n int)) {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	a.onMaxHands = fn
}

// Subscribe returns a channel receiving every processed frame and a cancel
// function. Frames are dropped for subscribers whose buffer is full.
func (a *App) Subscribe(buffer int) (<-chan Frame, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Frame, buffer)

	a.subMu.Lock()
	a.subscribers[ch] = struct{}{}
	a.subMu.Unlock()

	return ch, func() {
		a.subMu.Lock()
		defer a.subMu.Unlock()
		if _, ok := a.subscribers[ch]; ok {
			delete(a.subscribers, ch)
			close(ch)
		}
	}
}

// LastFrame returns the most recently published frame.
func (a *App) LastFrame() Frame {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	return a.last
}

// LatestJPEG returns the most recent preview image, if any.
func (a *App) LatestJPEG() ([]byte, bool) {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	return a.lastJPEG, a.lastJPEG != nil
}

// Process classifies one frame's detected hands and publishes the result.
func (a *App) Process(hands []detector.HandLandmarks) Frame {
	frame := buildFrame(hands, a.MaxHands(), time.Now())
	a.publish(frame)
	return frame
}

func (a *App) publish(frame Frame) {
	a.subMu.Lock()
	prev := a.last
	a.last = frame
	callback := a.onCount
	for ch := range a.subscribers {
		select {
		case ch <- frame:
		default:
		}
	}
	a.subMu.Unlock()

	if countChanged(prev, frame) {
		if frame.HasCount() {
			log.Printf("Count: %d (%d hands)", *frame.Count, len(frame.Hands))
		} else {
			log.Printf("Count: none (%d hands)", len(frame.Hands))
		}
		if callback != nil {
			if frame.HasCount() {
				callback(*frame.Count, true)
			} else {
				callback(0, false)
			}
		}
	}
}

func countChanged(prev, next Frame) bool {
	if prev.ID == "" {
		return true
	}
	if prev.HasCount() != next.HasCount() {
		return true
	}
	return next.HasCount() && *prev.Count != *next.Count
}

// Start opens the camera and begins the counting loop.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	a.camera.SetFPS(a.config.FPS)
	if err := a.camera.Open(); err != nil {
		return err
	}

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	log.Println("Counting pipeline started")
	return nil
}

// Stop halts the loop and releases the camera and detector.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	a.subMu.Lock()
	for ch := range a.subscribers {
		delete(a.subscribers, ch)
		close(ch)
	}
	a.subMu.Unlock()

	log.Println("Counting pipeline stopped")
}
