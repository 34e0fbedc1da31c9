package app

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/editor"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/register"
	"github.com/dshills/vicore/internal/textbuf"
)

// Options configures the host, usually from command-line flags.
type Options struct {
	// ConfigPath is the TOML configuration file.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// FilePath is the file to open. Empty opens an unnamed buffer.
	FilePath string
}

// App is the demo host. One app owns one engine over one buffer and
// feeds it one keystroke at a time.
type App struct {
	opts    Options
	cfg     config.Options
	log     *Logger
	session string

	buf    *textbuf.Buffer
	engine *editor.Engine

	screen  tcell.Screen
	watcher *config.Watcher

	top    int // first visible line
	status string

	shutdown sync.Once
}

// New creates the host: loads configuration, reads the file, builds the
// engine, and restores any persisted register session.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	log := NewLogger(ParseLogLevel(level), os.Stderr)

	var content string
	if opts.FilePath != "" {
		data, err := os.ReadFile(opts.FilePath)
		switch {
		case os.IsNotExist(err):
			// New file.
		case err != nil:
			return nil, fmt.Errorf("opening %s: %w", opts.FilePath, err)
		default:
			content = string(data)
		}
	}

	buf := textbuf.NewBuffer(content)
	engine := editor.New(buf)
	engine.SetShiftWidth(cfg.ShiftWidth)
	if cfg.Clipboard {
		if cb := register.NewSystemClipboard(); cb != nil {
			engine.SetClipboard(cb)
		}
	}

	a := &App{
		opts:    opts,
		cfg:     cfg,
		log:     log,
		session: uuid.NewString(),
		buf:     buf,
		engine:  engine,
	}

	if cfg.RegistersPath != "" {
		if err := engine.Registers().Load(cfg.RegistersPath); err != nil {
			log.Warn("register session not restored: %v", err)
		}
	}

	log.Info("session %s started", a.session)
	return a, nil
}

// Engine exposes the engine, for tests and embedding hosts.
func (a *App) Engine() *editor.Engine {
	return a.engine
}

// Run owns the terminal until the user quits. It returns ErrQuit on a
// normal exit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	a.screen = screen
	defer screen.Fini()

	if a.opts.ConfigPath != "" {
		w, err := config.Watch(a.opts.ConfigPath, func(opts config.Options) {
			// Hand the reload to the event loop; the engine is
			// single-threaded.
			_ = screen.PostEvent(tcell.NewEventInterrupt(opts))
		})
		if err != nil {
			a.log.Warn("config watch failed: %v", err)
		} else {
			a.watcher = w
			defer w.Close()
		}
	}

	for {
		a.render()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()

		case *tcell.EventInterrupt:
			if opts, ok := ev.Data().(config.Options); ok {
				a.applyConfig(opts)
			}

		case *tcell.EventKey:
			kev := translateKey(ev)
			if kev.Key == key.KeyNone {
				continue
			}
			if err := a.handleResult(a.engine.HandleKey(kev)); err != nil {
				return err
			}

		case nil:
			return ErrQuit
		}
	}
}

// handleResult applies the engine's host requests. Returns ErrQuit when
// the session should end.
func (a *App) handleResult(res editor.Result) error {
	if res.Err != nil {
		a.status = res.Err.Error()
		a.log.Error("edit failed: %v", res.Err)
		return nil
	}
	if res.Status != "" {
		a.status = res.Status
	} else if res.Executed {
		a.status = ""
	}
	if res.Filter != nil {
		a.status = fmt.Sprintf("no external formatter (range %d-%d)", res.Filter.Start, res.Filter.End)
	}

	switch res.Action {
	case editor.HostSave:
		a.save(res.FileName)
	case editor.HostSaveQuit:
		if a.save(res.FileName) {
			a.persistRegisters()
			return ErrQuit
		}
	case editor.HostQuit, editor.HostForceQuit:
		a.persistRegisters()
		return ErrQuit
	case editor.HostUndo:
		a.status = "undo is not available in the demo host"
	case editor.HostLookup:
		a.status = "lookup is not available in the demo host"
	}
	return nil
}

// save writes the buffer. Reports success.
func (a *App) save(name string) bool {
	path := name
	if path == "" {
		path = a.opts.FilePath
	}
	if path == "" {
		a.status = "no file name"
		return false
	}
	if err := os.WriteFile(path, []byte(a.buf.DocumentText()), 0o644); err != nil {
		a.status = err.Error()
		a.log.Error("write %s failed: %v", path, err)
		return false
	}
	a.opts.FilePath = path
	a.status = fmt.Sprintf("%q written", path)
	a.log.Info("wrote %s", path)
	return true
}

// applyConfig adopts a live-reloaded configuration.
func (a *App) applyConfig(opts config.Options) {
	a.cfg = opts
	a.engine.SetShiftWidth(opts.ShiftWidth)
	a.status = "configuration reloaded"
	a.log.Info("configuration reloaded")
}

// persistRegisters saves the named and numbered registers for the next
// session.
func (a *App) persistRegisters() {
	if a.cfg.RegistersPath == "" {
		return
	}
	if err := a.engine.Registers().Save(a.cfg.RegistersPath, a.session); err != nil {
		a.log.Warn("register session not saved: %v", err)
	}
}

// Shutdown releases the terminal and the watcher. Safe to call more
// than once.
func (a *App) Shutdown() {
	a.shutdown.Do(func() {
		if a.watcher != nil {
			a.watcher.Close()
		}
		a.log.Info("session %s ended", a.session)
	})
}
