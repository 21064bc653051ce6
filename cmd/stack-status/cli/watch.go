package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/avatarneil/stack-status/internal/application"
	"github.com/avatarneil/stack-status/internal/domain"
	"github.com/avatarneil/stack-status/internal/infrastructure/config"
	"github.com/avatarneil/stack-status/internal/infrastructure/logging"
	"github.com/avatarneil/stack-status/internal/infrastructure/notify_libnotify"
	"github.com/avatarneil/stack-status/internal/infrastructure/status_fs"
	"github.com/avatarneil/stack-status/internal/infrastructure/term_display"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchInterval time.Duration
	watchJSON     bool
	watchDetails  bool
	watchBranch   string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously refresh status until all checks settle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		// Log to a file: stdout belongs to the live display.
		log := logging.NewFile(cfg.Log.Level, cfg.Log.Path)
		defer func() { _ = log.Sync() }()

		interval := cfg.Watch.Interval
		if cmd.Flags().Changed("interval") {
			interval = watchInterval
		}
		details := watchDetails || cfg.Display.Details

		gt, gh := newClients(cfg)
		prs, checks := prProviders(cmd, gh, false)
		composer := application.NewComposer(log, gt, prs, checks, watchBranch)

		restore, err := term_display.SetupTerminal()
		if err != nil {
			return err
		}
		defer restore()

		out := term_display.NewCRLFWriter(os.Stdout)
		var renderer domain.Renderer = term_display.NewRenderer(out, true)
		if watchJSON {
			renderer = term_display.NewJSONRenderer(out, true)
		}

		loop := application.NewWatchLoop(log, composer, renderer, term_display.NewKeyReader(), interval, details)
		if cfg.Export.Path != "" {
			loop = loop.WithSink(status_fs.New(cfg.Export.Path))
		}
		if cfg.Watch.Notify {
			loop = loop.WithNotifier(notify_libnotify.NewSoft())
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		watchAndReload(ctx, cfgPath, log, loop)

		log.Info("watch start",
			zap.String("version", version),
			zap.Duration("interval", interval),
			zap.Bool("details", details),
		)

		err = loop.Run(ctx)
		restore() // before any error lands on the terminal
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 10*time.Second, "refresh interval")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "render each snapshot as JSON")
	watchCmd.Flags().BoolVarP(&watchDetails, "details", "d", false, "show detailed check information")
	watchCmd.Flags().StringVarP(&watchBranch, "branch", "b", "", "branch to report when no stack topology is available")

	rootCmd.AddCommand(watchCmd)
}

// watchAndReload retunes the loop interval when the config file changes,
// debounced so editors that write twice only trigger one reload. The
// watcher closes when ctx is cancelled.
func watchAndReload(ctx context.Context, cfgPath string, log *zap.Logger, loop *application.WatchLoop) {
	if cfgPath == "" {
		return
	}

	dir := filepath.Dir(cfgPath)
	base := filepath.Base(cfgPath)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("fsnotify init failed", zap.Error(err))
		return
	}
	if err := w.Add(dir); err != nil {
		log.Warn("fsnotify add dir failed", zap.String("dir", dir), zap.Error(err))
		_ = w.Close()
		return
	}

	go func() {
		defer func() { _ = w.Close() }()

		var timer *time.Timer
		fire := func() {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				log.Warn("config reload failed", zap.Error(err))
				return
			}
			loop.UpdateInterval(cfg.Watch.Interval)
			log.Info("config reloaded", zap.Duration("interval", cfg.Watch.Interval))
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.AfterFunc(300*time.Millisecond, fire)
				} else {
					timer.Reset(300 * time.Millisecond)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("fsnotify error", zap.Error(err))
			}
		}
	}()
}
