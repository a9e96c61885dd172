package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyslots/internal/scheduler"
)

// StoreKind selects the task store backend.
type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreJSON   StoreKind = "json"
)

// Config holds runtime settings for the studyslots binary.
type Config struct {
	Home        string
	Store       StoreKind
	DBPath      string
	JSONURL     string
	SlotsPath   string // optional YAML catalog; empty means the built-in catalog
	HorizonDays int
	LeadDays    int
	LogCalls    bool
	TraceFile   string // optional; spans are discarded when empty
}

// DefaultConfig returns a Config rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		Home:        home,
		Store:       StoreSQLite,
		DBPath:      filepath.Join(home, "studyslots.db"),
		JSONURL:     filepath.Join(home, "tasks.json"),
		HorizonDays: scheduler.DefaultHorizonDays,
		LeadDays:    scheduler.DefaultLeadDays,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for unset or unparseable values.
func Load() Config {
	home := os.Getenv("STUDYSLOTS_HOME")
	if home == "" {
		if userHome, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(userHome, ".studyslots")
		} else {
			home = ".studyslots"
		}
	}
	cfg := DefaultConfig(home)

	if v := os.Getenv("STUDYSLOTS_STORE"); v != "" {
		switch StoreKind(strings.ToLower(v)) {
		case StoreJSON:
			cfg.Store = StoreJSON
		case StoreSQLite:
			cfg.Store = StoreSQLite
		}
	}
	if v := os.Getenv("STUDYSLOTS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STUDYSLOTS_JSON_URL"); v != "" {
		cfg.JSONURL = v
	}
	if v := os.Getenv("STUDYSLOTS_SLOTS"); v != "" {
		cfg.SlotsPath = v
	}
	if v := os.Getenv("STUDYSLOTS_HORIZON_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HorizonDays = n
		}
	}
	if v := os.Getenv("STUDYSLOTS_LEAD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.LeadDays = n
		}
	}
	if v := os.Getenv("STUDYSLOTS_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYSLOTS_TRACE_FILE"); v != "" {
		cfg.TraceFile = v
	}

	return cfg
}
