package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/calories/internal/app"
	"github.com/idilsaglam/calories/internal/config"
	"github.com/idilsaglam/calories/internal/logger"
	"github.com/idilsaglam/calories/internal/registry"
	"github.com/idilsaglam/calories/internal/store"
	"github.com/idilsaglam/calories/internal/store/jsonstore"
	"github.com/idilsaglam/calories/internal/store/memstore"
	"github.com/idilsaglam/calories/internal/store/sqlitestore"
	"github.com/idilsaglam/calories/internal/tui"
	"github.com/idilsaglam/calories/internal/ui"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply does not land in the input fields.
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

// Deps carries streams, flag values and resources across one invocation.
type Deps struct {
	Out io.Writer
	Err io.Writer

	ConfigPath string
	Config     config.Config

	// RunTUI runs the interactive editor.
	RunTUI func(m *tui.Model, altScreen bool) error

	closers []func()
}

func (d *Deps) onClose(fn func()) { d.closers = append(d.closers, fn) }

func (d *Deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// flag name -> config key
var flagKeys = map[string]string{
	"storage":   "storage.backend",
	"data-dir":  "storage.dir",
	"log-level": "log.level",
	"theme":     "ui.theme",
}

// NewRootCmd builds the calories command tree.
func NewRootCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "calories",
		Short:         "Track meals and their calories",
		Long:          "calories keeps a running list of meals and food items with their calorie counts.\nWithout a subcommand it opens the interactive editor.",
		Version:       version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return deps.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(deps)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageErr(c, err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVarP(&deps.ConfigPath, "config", "c", "", "config file (default: ./.calories/config.yaml or $XDG_CONFIG_HOME/calories/config.yaml)")
	pf.String("storage", "", "storage backend: file, sqlite or memory")
	pf.String("data-dir", "", "data directory (default ~/.calories)")
	pf.String("log-level", "", "log level: debug, info, warn, error or off")
	pf.String("theme", "", "theme: classic, neon or mono")

	cmd.AddCommand(
		NewAddCmd(deps),
		NewListCmd(deps),
		NewEditCmd(deps),
		NewRemoveCmd(deps),
		NewClearCmd(deps),
		NewTotalCmd(deps),
		NewConfigCmd(deps),
	)
	return cmd
}

// setup loads configuration, applies flag overrides, picks the theme and
// starts logging.
func (d *Deps) setup(cmd *cobra.Command) error {
	cfg, v, err := config.Load(d.ConfigPath)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return usageErr(cmd, fmt.Errorf("invalid config: %w", err))
	}
	d.Config = cfg

	ui.SetTheme(cfg.UI.Theme)

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	closeLog, err := logger.Setup(cfg.Log.Level, logPath, cfg.Log.Pretty)
	if err != nil {
		return err
	}
	d.onClose(closeLog)
	log.Debug().Str("component", "cli").Str("command", cmd.CommandPath()).Str("backend", cfg.Storage.Backend).Msg("starting")
	return nil
}

// openStore opens the configured backend.
func openStore(cfg config.Config) (*store.Store, error) {
	var backend store.Backend
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		backend = memstore.New()
	case config.BackendSQLite:
		dir, err := cfg.DataDir()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		b, err := sqlitestore.Open(filepath.Join(dir, "calories.db"))
		if err != nil {
			return nil, err
		}
		backend = b
	default:
		dir, err := cfg.DataDir()
		if err != nil {
			return nil, err
		}
		b, err := jsonstore.Open(dir)
		if err != nil {
			return nil, err
		}
		backend = b
	}
	return store.New(backend, store.WithCollection(cfg.Storage.Collection)), nil
}

// session opens storage, loads the registry and starts a Coordinator on v.
func (d *Deps) session(v app.View) (*app.Coordinator, error) {
	st, err := openStore(d.Config)
	if err != nil {
		return nil, err
	}
	d.onClose(func() {
		if err := st.Close(); err != nil {
			log.Warn().Str("component", "cli").Err(err).Msg("closing store")
		}
	})

	reg, err := registry.Load(st)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	c := app.New(reg, st, v)
	c.Init()
	return c, nil
}

func runInteractive(deps *Deps) error {
	m := tui.New(tui.Options{DailyGoal: deps.Config.UI.DailyGoal})
	if _, err := deps.session(m); err != nil {
		return err
	}
	if deps.RunTUI == nil {
		return fmt.Errorf("interactive mode unavailable")
	}
	return deps.RunTUI(m, deps.Config.UI.AltScreen)
}
