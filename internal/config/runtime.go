package config

import (
	"os"
	"strconv"
	"time"
)

type Runtime struct {
	HTTPAddr       string
	CatalogPath    string
	CoursePath     string
	ProgressDSN    string
	DebounceMS     int
	ObsBuffer      int
	CourseCacheMax int
	LogLevel       string
	LogFormat      string
}

func Load() Runtime {
	return Runtime{
		HTTPAddr:       getenv("JOURNEY_HTTP_ADDR", ":8080"),
		CatalogPath:    getenv("JOURNEY_CATALOG", ""),
		CoursePath:     getenv("JOURNEY_COURSE", ""),
		ProgressDSN:    getenv("JOURNEY_PROGRESS_DSN", ""),
		DebounceMS:     getenvInt("JOURNEY_DEBOUNCE_MS", 200, 0),
		ObsBuffer:      getenvInt("JOURNEY_OBS_BUFFER", 4096, 1),
		CourseCacheMax: getenvInt("JOURNEY_COURSE_CACHE_MAX", 64, 1),
		LogLevel:       getenv("JOURNEY_LOG_LEVEL", "info"),
		LogFormat:      getenv("JOURNEY_LOG_FORMAT", "text"),
	}
}

func (r Runtime) Debounce() time.Duration {
	return time.Duration(r.DebounceMS) * time.Millisecond
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback, min int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return fallback
	}
	return v
}
