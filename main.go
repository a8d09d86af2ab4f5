package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/metcalfc/booklet/internal/annotate"
	"github.com/metcalfc/booklet/internal/config"
	"github.com/metcalfc/booklet/internal/dictionary"
	"github.com/metcalfc/booklet/internal/logutils"
	"github.com/metcalfc/booklet/internal/reader"
	"github.com/metcalfc/booklet/internal/state"
	"github.com/metcalfc/booklet/internal/viewer"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func build() string {
	v, c, d := version, commit, date
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func description() string {
	return `Opens a book in a scrolling reader.

Supported formats:
  ` + strings.Join(reader.SupportedFormats(), "\n  ") + `

Bookmarks and marked words are kept next to the book in .booklet_<file>.
Click a word to select it, then press d to look it up or m to mark it.

Controls:
  j/k, ↓/↑       line down/up
  g g, g e       top, end
  g n, g p       next/previous bookmark
  ], [           next/previous chapter
  x              toggle bookmark
  m              toggle marker on the selection
  d              define the selection
  f              focus mode
  esc            clear selection and definition
  q              quit`
}

// Flags holds the global options.
type Flags struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Fresh      bool
}

func main() {
	var (
		flags     Flags
		logCloser func()
	)

	app := &cli.Command{
		Name:        "booklet",
		Usage:       "Read books in the terminal",
		UsageText:   "booklet [options] <file>",
		Description: description(),
		Version:     build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("BOOKLET_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("BOOKLET_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <state-dir>/booklet.log)",
				Sources:     cli.EnvVars("BOOKLET_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.BoolFlag{
				Name:        "fresh",
				Usage:       "start at the beginning and forget the saved reading position",
				Destination: &flags.Fresh,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(state.Dir(), "booklet.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return errors.New("expected exactly one file. Run 'booklet --help' for usage")
			}
			return run(ctx, flags, c.Args().First())
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, flags Flags, path string) error {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	doc, err := reader.Load(path)
	if err != nil {
		return err
	}

	sidecar := annotate.NewSidecar(path)
	rec, err := sidecar.Load()
	if err != nil {
		return err
	}

	theme, err := cfg.ViewerTheme(termenv.EnvColorProfile())
	if err != nil {
		return err
	}

	session := viewer.NewSession(doc, annotate.NewStore(rec, sidecar), theme, 0, 0)
	client := dictionary.New(cfg.Dictionary.Endpoint, cfg.Dictionary.Timeout)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newModel(ctx, session, client.Lookup, cfg.Dictionary.Timeout)

	saved, positionsPath := 0, ""
	if positions, key, ok := openPositions(path); ok {
		m.positions, m.docKey = positions, key
		positionsPath = positions.Path()
		saved = startLine(positions, key, flags.Fresh)
	}
	session.Restore(saved)

	log.Info().
		Str("path", path).
		Str("sidecar", sidecar.Path()).
		Str("positions", positionsPath).
		Int("line", session.Line()).
		Msg("session started")

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// startLine returns the saved line of key. With fresh the saved line is
// forgotten instead.
func startLine(positions *state.Store, key string, fresh bool) int {
	if !fresh {
		return positions.Line(key)
	}
	if err := positions.Clear(key); err != nil {
		log.Warn().Err(err).Msg("clear reading position")
	}
	return 0
}

// openPositions opens the reading position store. Failures only disable
// position restore.
func openPositions(path string) (*state.Store, string, bool) {
	positions, err := state.Open(state.Dir())
	if err != nil {
		log.Warn().Err(err).Msg("reading positions unavailable")
		return nil, "", false
	}
	key, err := state.DocumentKey(path)
	if err != nil {
		log.Warn().Err(err).Msg("reading positions unavailable")
		return nil, "", false
	}
	return positions, key, true
}
