package cli

import (
	"fmt"
	"os"

	"github.com/avatarneil/stack-status/internal/application"
	"github.com/avatarneil/stack-status/internal/domain"
	"github.com/avatarneil/stack-status/internal/infrastructure/config"
	"github.com/avatarneil/stack-status/internal/infrastructure/gh_cli"
	"github.com/avatarneil/stack-status/internal/infrastructure/gt_cli"
	"github.com/avatarneil/stack-status/internal/infrastructure/logging"
	"github.com/avatarneil/stack-status/internal/infrastructure/status_fs"
	"github.com/avatarneil/stack-status/internal/infrastructure/term_display"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath string
	version = "dev"

	rootJSON    bool
	rootDetails bool
	rootBranch  string
)

var rootCmd = &cobra.Command{
	Use:   "stack-status",
	Short: "Show stacked-branch status with live CI check progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		log := logging.New(cfg.Log.Level)
		defer func() { _ = log.Sync() }()

		gt, gh := newClients(cfg)
		prs, checks := prProviders(cmd, gh, true)
		if !gt.Installed(cmd.Context()) {
			fmt.Fprintln(os.Stderr, "Warning: Graphite CLI (gt) not found. Showing current branch only (no stack hierarchy).")
		}

		composer := application.NewComposer(log, gt, prs, checks, rootBranch)
		st, err := composer.Compose(cmd.Context())
		if err != nil {
			return err
		}

		exportSnapshot(cmd, log, cfg.Export.Path, st)

		if rootJSON {
			term_display.NewJSONRenderer(os.Stdout, false).Render(st, false)
			return nil
		}
		term_display.NewRenderer(os.Stdout, false).Render(st, rootDetails || cfg.Display.Details)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClients(cfg config.Config) (*gt_cli.Client, *gh_cli.Client) {
	gt := gt_cli.New(cfg.Tools.Gt, cfg.Tools.Git, cfg.Tools.Timeout)
	gh := gh_cli.New(cfg.Tools.Gh, cfg.Tools.Timeout)
	return gt, gh
}

// prProviders gates the PR and check lookups on gh being installed; a
// missing gh degrades every non-trunk branch to "no PR".
func prProviders(cmd *cobra.Command, gh *gh_cli.Client, warn bool) (domain.PRResolver, domain.CheckProvider) {
	if gh.Installed(cmd.Context()) {
		return gh, gh
	}
	if warn {
		fmt.Fprintln(os.Stderr, "Warning: GitHub CLI (gh) not found. CI status checks will not be available.")
	}
	return nil, nil
}

func exportSnapshot(cmd *cobra.Command, log *zap.Logger, path string, st domain.StackStatus) {
	if path == "" {
		return
	}
	if err := status_fs.New(path).Write(cmd.Context(), st); err != nil {
		log.Warn("snapshot export failed", zap.String("path", path), zap.Error(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to config.yaml")

	rootCmd.Flags().BoolVar(&rootJSON, "json", false, "output as JSON")
	rootCmd.Flags().BoolVarP(&rootDetails, "details", "d", false, "show detailed check information")
	rootCmd.Flags().StringVarP(&rootBranch, "branch", "b", "", "branch to report when no stack topology is available")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(*cobra.Command, []string) {
			fmt.Println(version)
		},
	})

	comp := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	rootCmd.AddCommand(comp)
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/stack-status/config.yaml"
	}
	return "config.yaml"
}
