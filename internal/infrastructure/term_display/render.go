// Package term_display renders snapshots to the terminal and owns the
// raw-mode keypress plumbing for watch mode.
package term_display

import (
	"fmt"
	"io"

	"github.com/avatarneil/stack-status/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	dimStyle     = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	runStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func statusIcon(s domain.CheckStatus) string {
	switch s {
	case domain.StatusPassed:
		return "✓"
	case domain.StatusFailed:
		return "✗"
	case domain.StatusRunning:
		return "◐"
	case domain.StatusQueued, domain.StatusSkipped:
		return "○"
	case domain.StatusCancelled:
		return "⊘"
	default:
		return "?"
	}
}

func statusStyle(s domain.CheckStatus) lipgloss.Style {
	switch s {
	case domain.StatusPassed:
		return passStyle
	case domain.StatusFailed:
		return failStyle
	case domain.StatusRunning:
		return runStyle
	default:
		return mutedStyle
	}
}

// Renderer writes human-oriented output. With clear set it wipes the
// screen before each snapshot (watch mode).
type Renderer struct {
	w     io.Writer
	clear bool
}

func NewRenderer(w io.Writer, clear bool) *Renderer {
	return &Renderer{w: w, clear: clear}
}

func (r *Renderer) Render(st domain.StackStatus, details bool) {
	if r.clear {
		fmt.Fprint(r.w, "\x1b[2J\x1b[H")
	}

	header := fmt.Sprintf("%s  ·  updated %s",
		boldStyle.Render("Stack Status"), timeStyle.Render(st.Timestamp))
	fmt.Fprintln(r.w, headerStyle.Render(header))
	fmt.Fprintln(r.w)

	for i, b := range st.Branches {
		r.renderBranch(b, details)
		if i != len(st.Branches)-1 {
			fmt.Fprintln(r.w, dimStyle.Render("│"))
		}
	}
	fmt.Fprintln(r.w)
}

func (r *Renderer) renderBranch(b domain.BranchStatus, details bool) {
	indicator := dimStyle.Render("◯")
	name := b.Branch
	switch {
	case b.IsTrunk:
		indicator = mutedStyle.Render("●")
	case b.IsCurrent:
		indicator = currentStyle.Render("◉")
		name = boldStyle.Render(name)
	}

	pr := ""
	if b.PR != nil {
		pr = " " + dimStyle.Render(fmt.Sprintf("(#%d)", *b.PR))
	}
	fmt.Fprintf(r.w, "%s %s%s\n", indicator, name, pr)

	switch {
	case b.Summary != nil:
		sty := statusStyle(b.Summary.Overall)
		fmt.Fprintf(r.w, "   %s\n", sty.Render(statusIcon(b.Summary.Overall)+" "+b.Summary.Text()))
	case !b.IsTrunk:
		fmt.Fprintf(r.w, "   %s\n", dimStyle.Render("no PR"))
	}

	if !details || b.IsTrunk {
		return
	}
	for _, c := range b.Checks {
		dur := ""
		if c.DurationSecs != nil {
			dur = " (" + formatDuration(*c.DurationSecs) + ")"
		}
		sty := statusStyle(c.Status)
		fmt.Fprintf(r.w, "    %s %s %s%s\n",
			dimStyle.Render("├─"), sty.Render(statusIcon(c.Status)), c.Name, dur)
	}
}

func (r *Renderer) RenderHelp() {
	fmt.Fprintln(r.w, dimStyle.Render("─────────────────────────────────────────"))
	fmt.Fprintf(r.w, "%s quit  %s refresh\n",
		boldStyle.Render("[q]"), boldStyle.Render("[r]"))
}

func (r *Renderer) RenderComplete() {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, passStyle.Render("All checks complete. Exiting watch mode."))
}

// formatDuration renders whole seconds the way humans read CI timings.
func formatDuration(secs uint64) string {
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm%ds", secs/60, secs%60)
	default:
		return fmt.Sprintf("%dh%dm", secs/3600, (secs%3600)/60)
	}
}
