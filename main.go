package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"wurdlurnur/internal/card"
	"wurdlurnur/internal/config"
	"wurdlurnur/internal/media"
	"wurdlurnur/internal/progress"
	"wurdlurnur/internal/session"
	"wurdlurnur/internal/ui"
)

var errAllLearned = errors.New("all words learned")

func main() {
	dbFlag := flag.String("db", "", "word table to study (csv file or sqlite database)")
	storeFlag := flag.String("store", "", "storage engine: csv or sqlite")
	importFlag := flag.String("import", "", "csv table that seeds an empty sqlite database")
	nFlag := flag.Int("n", 0, "number of words to study, skips the slider")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [rand|chron|alpha]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	err := run(*dbFlag, *storeFlag, *importFlag, *nFlag, flag.Arg(0))
	switch {
	case errors.Is(err, errAllLearned):
		fmt.Println("Congratulations! All words in database are lürnt.")
	case err != nil:
		fmt.Fprintf(os.Stderr, "fatal: %v\a\n", err)
		os.Exit(1)
	}
}

func run(dbPath, engine, importPath string, n int, order string) error {
	config.LoadDotEnv(".env", nil)
	cfg, err := config.Load(nil)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if engine != "" {
		cfg.Store = engine
	}
	if importPath != "" {
		cfg.ImportPath = importPath
	}

	logger, logFile, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	strategy, ok := session.ParseStrategy(order)
	if !ok {
		logger.Warn("unknown ordering, using alphabetical", "arg", order)
	}

	store, err := progress.NewByEngine(cfg.Store, cfg.DBPath)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}
	table, imported, err := progress.LoadOrImport(store, cfg.ImportSource())
	if err != nil {
		return err
	}
	if imported {
		logger.Info("seeded database", "db", cfg.DBPath, "from", cfg.ImportPath, "words", table.Len())
	}
	pool := table.Unlearned()
	if len(pool) == 0 {
		logger.Info("nothing left to learn", "words", table.Len())
		return errAllLearned
	}
	slider, err := cfg.ResolveSlider(len(pool))
	if err != nil {
		return err
	}

	lib := media.NewLibrary(cfg.ImageDir, cfg.PronunciationDir, cfg.SoundDir, logger)
	lib.Mute = cfg.Mute

	m, err := ui.InitialModel(ui.Params{
		Table:     table,
		Store:     store,
		Pool:      pool,
		Strategy:  strategy,
		Slider:    slider,
		Preselect: n,
		Session: session.Options{
			Card: card.Options{
				MaxContextChars:    cfg.MaxContextChars,
				MaxDefinitionChars: cfg.MaxDefinitionChars,
			},
			Images: lib,
			Logger: logger,
		},
		Media:  lib,
		Logger: logger,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	if err != nil {
		return err
	}
	logger.Info("starting", "db", cfg.DBPath, "store", cfg.Store, "unlearned", len(pool), "order", strategy)

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := final.(ui.UiModel)
	if !ok {
		return nil
	}
	if !fm.Flushed() {
		if err := fm.Flush(); err != nil {
			logger.Error("saving progress on exit", "err", err)
			return err
		}
	}
	if s := fm.Session(); s != nil {
		sum := s.Summary()
		logger.Info("session finished", "session", s.Index, "pass", sum.Pass, "fail", sum.Fail,
			"skip", sum.Skip, "learned", sum.Learned)
	}
	return fm.Err()
}

// newLogger writes to a file since the terminal belongs to the UI.
func newLogger(cfg config.Config) (*log.Logger, *os.File, error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel,
		Prefix:          "wurdlurnur",
	})
	return logger.With("run", uuid.NewString()[:8]), f, nil
}
