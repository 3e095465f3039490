// Package config reads settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"wurdlurnur/internal/card"
	"wurdlurnur/internal/progress"
)

var ErrInvalidSlider = errors.New("config: invalid slider bounds")

// MaxKeyword stands for the number of unlearned words in slider settings.
const MaxKeyword = "max"

const envPrefix = "WURD_"

type Config struct {
	DBPath           string
	Store            string
	ImportPath       string // CSV table that seeds an empty SQLite database
	ImageDir         string
	PronunciationDir string
	SoundDir         string

	LogFile  string
	LogLevel log.Level

	MaxContextChars    int
	MaxDefinitionChars int

	SliderMin   string
	SliderMax   string
	SliderStart string

	NoColor bool
	Mute    bool
}

func Default() Config {
	return Config{
		DBPath:             "cards.csv",
		Store:              progress.EngineCSV,
		ImportPath:         "cards.csv",
		ImageDir:           "word_img",
		PronunciationDir:   "word_pron",
		SoundDir:           "sound",
		LogFile:            "wurdlurnur.log",
		LogLevel:           log.InfoLevel,
		MaxContextChars:    card.DefaultMaxContextChars,
		MaxDefinitionChars: card.DefaultMaxDefinitionChars,
		SliderMin:          "1",
		SliderMax:          MaxKeyword,
		SliderStart:        MaxKeyword,
	}
}

// LoadDotEnv loads path into the environment when it exists. Variables that
// are already set win.
func LoadDotEnv(path string, logger *log.Logger) {
	if err := godotenv.Load(path); err != nil {
		if logger != nil {
			logger.Debug("no .env file loaded", "path", path, "err", err)
		}
	}
}

// Load builds a Config from the WURD_* variables returned by getenv, which
// is os.Getenv when nil.
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(envPrefix + key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Default()
	cfg.DBPath = env("DB", cfg.DBPath)
	cfg.Store = strings.ToLower(env("STORE", cfg.Store))
	cfg.ImportPath = env("IMPORT", cfg.ImportPath)
	cfg.ImageDir = env("IMAGE_DIR", cfg.ImageDir)
	cfg.PronunciationDir = env("PRON_DIR", cfg.PronunciationDir)
	cfg.SoundDir = env("SOUND_DIR", cfg.SoundDir)
	cfg.LogFile = env("LOG_FILE", cfg.LogFile)
	cfg.SliderMin = env("SLIDER_MIN", cfg.SliderMin)
	cfg.SliderMax = env("SLIDER_MAX", cfg.SliderMax)
	cfg.SliderStart = env("SLIDER_START", cfg.SliderStart)

	if lvl := env("LOG_LEVEL", ""); lvl != "" {
		parsed, err := log.ParseLevel(lvl)
		if err != nil {
			return cfg, fmt.Errorf("config: %sLOG_LEVEL: %w", envPrefix, err)
		}
		cfg.LogLevel = parsed
	}

	var err error
	if cfg.MaxContextChars, err = positive(env("MAX_CONTEXT_CHARS", ""), cfg.MaxContextChars); err != nil {
		return cfg, fmt.Errorf("config: %sMAX_CONTEXT_CHARS: %w", envPrefix, err)
	}
	if cfg.MaxDefinitionChars, err = positive(env("MAX_DEFINITION_CHARS", ""), cfg.MaxDefinitionChars); err != nil {
		return cfg, fmt.Errorf("config: %sMAX_DEFINITION_CHARS: %w", envPrefix, err)
	}

	cfg.NoColor = getenv("NO_COLOR") != "" || truthy(env("NO_COLOR", ""))
	cfg.Mute = truthy(env("MUTE", ""))
	return cfg, nil
}

// ImportSource returns the CSV table to seed the store from, or "" when the
// store is itself that table.
func (c Config) ImportSource() string {
	if c.Store != progress.EngineSQLite || c.ImportPath == c.DBPath {
		return ""
	}
	return c.ImportPath
}

func positive(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func truthy(value string) bool {
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

// Slider holds resolved slider bounds.
type Slider struct {
	Min   int
	Max   int
	Start int
}

// ResolveSlider turns the configured bounds into numbers for a table with
// unlearned words left to study. "max" means unlearned.
func (c Config) ResolveSlider(unlearned int) (Slider, error) {
	var s Slider
	var err error
	if s.Max, err = sliderValue(c.SliderMax, unlearned); err != nil {
		return s, err
	}
	if s.Min, err = sliderValue(c.SliderMin, unlearned); err != nil {
		return s, err
	}
	if strings.EqualFold(strings.TrimSpace(c.SliderStart), MaxKeyword) {
		s.Start = s.Max
	} else if s.Start, err = sliderValue(c.SliderStart, unlearned); err != nil {
		return s, err
	}

	switch {
	case s.Min < 1:
		return s, fmt.Errorf("%w: min %d below 1", ErrInvalidSlider, s.Min)
	case s.Max < s.Min:
		return s, fmt.Errorf("%w: max %d below min %d", ErrInvalidSlider, s.Max, s.Min)
	case s.Max > unlearned:
		return s, fmt.Errorf("%w: max %d above %d unlearned words", ErrInvalidSlider, s.Max, unlearned)
	case s.Start < s.Min || s.Start > s.Max:
		return s, fmt.Errorf("%w: start %d outside [%d, %d]", ErrInvalidSlider, s.Start, s.Min, s.Max)
	}
	return s, nil
}

func sliderValue(value string, unlearned int) (int, error) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, MaxKeyword) {
		return unlearned, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSlider, value)
	}
	return n, nil
}
