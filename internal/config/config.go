// Package config loads handcount's runtime configuration from the
// environment, optionally seeded from a .env file.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Limits for the number of hands counted per frame.
const (
	MinHands = 1
	MaxHands = 4
)

// Frame rate bounds for the counting loop.
const (
	DefaultFPS = 15
	MaxFPS     = 60
)

// Config holds the process configuration.
type Config struct {
	Addr     string
	DBPath   string
	WebDir   string
	CameraID int
	FPS      int
	MaxHands int
	Tray     bool

	MinDetectionConf   float64
	MinTrackingConf    float64
	MinJointConfidence float64
}

// Load reads a .env file if present, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Addr:               getEnv("HANDCOUNT_ADDR", ":8080"),
		DBPath:             getEnv("HANDCOUNT_DB", defaultDBPath()),
		WebDir:             getEnv("HANDCOUNT_WEB_DIR", ""),
		CameraID:           getEnvInt("HANDCOUNT_CAMERA", 0),
		FPS:                getEnvInt("HANDCOUNT_FPS", DefaultFPS),
		MaxHands:           getEnvInt("HANDCOUNT_MAX_HANDS", 2),
		Tray:               getEnvBool("HANDCOUNT_TRAY", false),
		MinDetectionConf:   getEnvFloat("HANDCOUNT_MIN_DETECTION_CONFIDENCE", 0.5),
		MinTrackingConf:    getEnvFloat("HANDCOUNT_MIN_TRACKING_CONFIDENCE", 0.5),
		MinJointConfidence: getEnvFloat("HANDCOUNT_MIN_JOINT_CONFIDENCE", 0.3),
	}
	cfg.normalize()

	return cfg
}

// normalize clamps values that would make the pipeline misbehave.
func (c *Config) normalize() {
	if c.MaxHands < MinHands {
		log.Printf("HANDCOUNT_MAX_HANDS=%d is below %d, using %d", c.MaxHands, MinHands, MinHands)
		c.MaxHands = MinHands
	}
	if c.MaxHands > MaxHands {
		log.Printf("HANDCOUNT_MAX_HANDS=%d is above %d, using %d", c.MaxHands, MaxHands, MaxHands)
		c.MaxHands = MaxHands
	}
	c.FPS = ClampFPS(c.FPS)
}

// DataDir returns the directory holding the database file.
func (c *Config) DataDir() string {
	return filepath.Dir(c.DBPath)
}

// ClampFPS returns fps limited to 1..MaxFPS. Non-positive values mean DefaultFPS.
func ClampFPS(fps int) int {
	if fps <= 0 {
		return DefaultFPS
	}
	if fps > MaxFPS {
		log.Printf("FPS %d is above %d, using %d", fps, MaxFPS, MaxFPS)
		return MaxFPS
	}
	return fps
}

// ValidMaxHands reports whether n is an accepted hands-per-frame limit.
func ValidMaxHands(n int) bool {
	return n >= MinHands && n <= MaxHands
}

func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "handcount.db"
	}
	return filepath.Join(homeDir, ".handcount", "handcount.db")
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return defaultVal
}
