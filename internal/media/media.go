// Package media finds word pictures and pronunciations on disk and hands
// them to the platform's player or viewer.
package media

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var ErrNotFound = errors.New("media: file not found")

// Sound effects shipped in the sound directory.
const (
	SoundNewSession = "new_session"
	SoundCardFlip   = "card_flip"
	SoundToggle     = "toggle"
	SoundAppear     = "appear"
	SoundLearned    = "lurnt"
	SoundPopup      = "popup"
	SoundQuit       = "quit"
)

const (
	imageExt = ".png"
	audioExt = ".ogg"
)

// Runner starts an external command without waiting for it.
type Runner func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

type Library struct {
	ImageDir         string
	PronunciationDir string
	SoundDir         string
	// Mute disables every sound.
	Mute bool

	Logger *log.Logger
	run    Runner
	goos   string

	// sounds play from concurrent commands
	mu     sync.Mutex
	warned map[string]bool
}

func NewLibrary(imageDir, pronunciationDir, soundDir string, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{
		ImageDir:         imageDir,
		PronunciationDir: pronunciationDir,
		SoundDir:         soundDir,
		Logger:           logger,
		run:              startCommand,
		goos:             runtime.GOOS,
		warned:           map[string]bool{},
	}
}

// WithRunner replaces the command runner and platform, for tests.
func (l *Library) WithRunner(goos string, run Runner) *Library {
	l.goos = goos
	l.run = run
	return l
}

// Image returns the picture path for word, ok=false when there is none.
func (l *Library) Image(word string) (string, bool) {
	path := filepath.Join(l.ImageDir, strings.ToLower(word)+imageExt)
	return path, l.exists(path)
}

// Pronounce plays the recorded pronunciation of word.
func (l *Library) Pronounce(word string) error {
	return l.play(filepath.Join(l.PronunciationDir, word+audioExt))
}

// PlaySound plays one of the Sound* effects. A missing file is logged once
// and otherwise ignored.
func (l *Library) PlaySound(name string) {
	if l.Mute {
		return
	}
	if err := l.play(filepath.Join(l.SoundDir, name+audioExt)); err != nil && !errors.Is(err, ErrNotFound) {
		l.Logger.Warn("sound effect failed", "sound", name, "err", err)
	}
}

// OpenImage shows path in the system image viewer.
func (l *Library) OpenImage(path string) error {
	if !l.exists(path) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	var err error
	switch l.goos {
	case "windows":
		err = l.run("cmd", "/c", "start", "", path)
	case "darwin":
		err = l.run("open", path)
	default:
		err = l.run("xdg-open", path)
	}
	if err != nil {
		return fmt.Errorf("media: opening %s: %w", path, err)
	}
	return nil
}

func (l *Library) play(path string) error {
	if !l.exists(path) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	name, args := l.player(path)
	if err := l.run(name, args...); err != nil {
		return fmt.Errorf("media: playing %s: %w", path, err)
	}
	return nil
}

func (l *Library) player(path string) (string, []string) {
	switch l.goos {
	case "windows":
		quoted := strings.ReplaceAll(path, "'", "''")
		return "powershell", []string{"-c", fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", quoted)}
	case "darwin":
		return "afplay", []string{path}
	default:
		return "paplay", []string{path}
	}
}

// exists reports whether path is a regular file, warning once per missing path.
func (l *Library) exists(path string) bool {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return true
	}
	l.mu.Lock()
	if l.warned == nil {
		l.warned = map[string]bool{}
	}
	first := !l.warned[path]
	l.warned[path] = true
	l.mu.Unlock()
	if first {
		l.Logger.Warn("media file missing", "path", path)
	}
	return false
}
