// Package config loads application settings from defaults, an optional YAML
// file and TIMEOFF_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/warp/timeoff-tracker/generic"
	"github.com/warp/timeoff-tracker/timeoff"
)

const EnvPrefix = "TIMEOFF_"

type Application struct {
	Server Server `koanf:"server"`
	Ledger Ledger `koanf:"ledger"`
	Store  Store  `koanf:"store"`
	Log    Log    `koanf:"log"`
}

type Server struct {
	Port           int      `koanf:"port"`
	AllowedOrigins []string `koanf:"allowedorigins"`
}

type Ledger struct {
	HoursPerDay float64    `koanf:"hoursperday"`
	WeekStart   string     `koanf:"weekstart"`
	Default     Allocation `koanf:"default"`
}

type Allocation struct {
	Vacation float64 `koanf:"vacation"`
	Personal float64 `koanf:"personal"`
	Floater  float64 `koanf:"floater"`
}

type Store struct {
	Backend string `koanf:"backend"`
}

type Log struct {
	Level string `koanf:"level"`
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Defaults is the configuration used when nothing overrides it.
func Defaults() Application {
	return Application{
		Server: Server{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
		Ledger: Ledger{
			HoursPerDay: 7.75,
			WeekStart:   "sunday",
			Default: Allocation{
				Vacation: 116.25,
				Personal: 23.25,
				Floater:  15.5,
			},
		},
		Store: Store{Backend: BackendMemory},
		Log:   Log{Level: "info"},
	}
}

// Load builds the configuration. A missing file at path is not an error.
// An empty path skips the file layer.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Infof("Config file not found at %s, using defaults and environment variables", path)
			} else {
				log.Errorf("error loading config from YAML: %v", err)
				return Application{}, err
			}
		} else {
			log.Infof("Loaded configuration from file: %s", path)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")
			if k == "server.allowedorigins" {
				return k, strings.Split(v, ",")
			}
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	if err := app.Validate(); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Validate rejects settings the engine cannot work with.
func (a Application) Validate() error {
	if a.Server.Port <= 0 || a.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", a.Server.Port)
	}
	if a.Ledger.HoursPerDay <= 0 {
		return fmt.Errorf("ledger.hoursperday must be positive, got %v", a.Ledger.HoursPerDay)
	}
	if _, err := timeoff.ParseWeekStart(a.Ledger.WeekStart); err != nil {
		return fmt.Errorf("ledger.weekstart: %w", err)
	}
	if err := a.Ledger.Default.toAllocation().Validate(); err != nil {
		return fmt.Errorf("ledger.default: %w", err)
	}
	switch a.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendMemory, BackendSQLite, a.Store.Backend)
	}
	if _, err := log.ParseLevel(a.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Settings converts the ledger section into engine settings.
// Call only on a validated Application.
func (a Application) Settings() timeoff.Settings {
	weekStart, _ := timeoff.ParseWeekStart(a.Ledger.WeekStart)
	return timeoff.Settings{
		HoursPerDay:       decimal.NewFromFloat(a.Ledger.HoursPerDay),
		WeekStart:         weekStart,
		DefaultAllocation: a.Ledger.Default.toAllocation(),
	}
}

func (a Allocation) toAllocation() timeoff.Allocation {
	return timeoff.Allocation{
		Vacation: generic.Hours(a.Vacation),
		Personal: generic.Hours(a.Personal),
		Floater:  generic.Hours(a.Floater),
	}
}
