package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/avatarneil/stack-status/internal/domain"
	"github.com/avatarneil/stack-status/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var checksJSON bool

var checksCmd = &cobra.Command{
	Use:   "checks <branch>",
	Short: "Show detailed CI check status for one branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		branch := args[0]

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		_, gh := newClients(cfg)
		if !gh.Installed(cmd.Context()) {
			return errors.New("GitHub CLI (gh) not found, install from https://cli.github.com/")
		}

		checks, err := gh.Checks(cmd.Context(), branch)
		if err != nil {
			return err
		}
		summary := domain.Summarize(checks)

		var pr *int64
		if n, ok := gh.ResolvePR(cmd.Context(), branch); ok {
			pr = &n
		}
		var prURL *string
		if u := gh.PRURL(cmd.Context(), branch); u != "" {
			prURL = &u
		}

		if checksJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Branch  string              `json:"branch"`
				PR      *int64              `json:"pr"`
				PRURL   *string             `json:"pr_url"`
				Checks  []domain.Check      `json:"checks"`
				Summary domain.CheckSummary `json:"summary"`
			}{branch, pr, prURL, checks, summary})
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tCONCLUSION\tDURATION")
		for _, c := range checks {
			conclusion := "-"
			if c.Conclusion != nil {
				conclusion = *c.Conclusion
			}
			duration := "-"
			if c.DurationSecs != nil {
				duration = fmt.Sprintf("%ds", *c.DurationSecs)
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Status, conclusion, duration)
		}
		_ = w.Flush()

		fmt.Printf("\n%s: %s\n", branch, summary.Text())
		if prURL != nil {
			fmt.Println(*prURL)
		}
		return nil
	},
}

func init() {
	checksCmd.Flags().BoolVar(&checksJSON, "json", false, "print JSON")
	rootCmd.AddCommand(checksCmd)
}
