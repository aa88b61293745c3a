package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/ayusman/handcount/internal/app"
	"github.com/ayusman/handcount/internal/config"
	"github.com/ayusman/handcount/internal/detector"
	"github.com/ayusman/handcount/internal/server"
	"github.com/ayusman/handcount/internal/store"
	"github.com/ayusman/handcount/internal/tray"
)

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	cameraID := flag.Int("camera", cfg.CameraID, "video capture device id")
	webDir := flag.String("web", cfg.WebDir, "directory of static preview files")
	withTray := flag.Bool("tray", cfg.Tray, "show the system tray icon")
	flag.Parse()

	fmt.Println("handcount - finger counting")

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if !flagSet("camera") {
		*cameraID = storedCamera(st, *cameraID)
	}

	application := app.New(app.Config{
		Store:    st,
		CameraID: *cameraID,
		FPS:      cfg.FPS,
		MaxHands: cfg.MaxHands,
		DetectorConfig: detector.Config{
			MaxHands:           config.MaxHands,
			MinConfidence:      cfg.MinDetectionConf,
			MinTrackingConf:    cfg.MinTrackingConf,
			MinJointConfidence: cfg.MinJointConfidence,
		},
	})
	if err := application.LoadSettings(); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start camera %d: %v", *cameraID, err)
	}
	defer application.Stop()

	staticDir := *webDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     st,
		Counter:   application,
	})

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		errCh <- srv.ListenAndServe(*addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if *withTray {
		runTray(application, *addr, errCh, sigCh)
		return
	}

	if err := waitForShutdown(errCh, sigCh); err != nil {
		log.Printf("Server failed: %v", err)
	}
}

// runTray blocks on the tray event loop until the user quits, a signal
// arrives or the server fails. Returning lets main's deferred cleanup run.
func runTray(application *app.App, addr string, errCh <-chan error, sigCh <-chan os.Signal) {
	t := tray.New(application.MaxHands())
	t.OnToggle(application.SetEnabled)
	t.OnMaxHands(func(n int) {
		if err := application.SetMaxHands(n); err != nil {
			log.Printf("Failed to set max hands: %v", err)
		}
	})
	t.OnSettings(func() {
		openBrowser(localURL(addr))
	})
	application.OnCount(t.SetCount)
	application.OnMaxHands(t.SetMaxHands)

	go func() {
		if err := waitForShutdown(errCh, sigCh); err != nil {
			log.Printf("Server failed: %v", err)
		}
		t.Quit()
	}()

	t.Run()
}

// waitForShutdown blocks until the server stops or a signal arrives and
// returns the server's error, or nil for a signal.
func waitForShutdown(errCh <-chan error, sigCh <-chan os.Signal) error {
	select {
	case err := <-errCh:
		if err == nil {
			err = errors.New("server stopped")
		}
		return err
	case sig := <-sigCh:
		log.Printf("Received %s, shutting down", sig)
		return nil
	}
}

func storedCamera(st *store.Store, fallback int) int {
	id, err := st.Settings().GetInt(store.KeyCameraID)
	if errors.Is(err, store.ErrNotFound) {
		return fallback
	}
	if err != nil {
		log.Printf("Failed to read stored camera: %v", err)
		return fallback
	}
	return id
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.handcount/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".handcount", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
