package term_display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/avatarneil/stack-status/internal/domain"
)

// JSONRenderer presents snapshots as pretty JSON instead of the styled
// view. Used by --json in both one-shot and watch modes.
type JSONRenderer struct {
	w     io.Writer
	clear bool
}

func NewJSONRenderer(w io.Writer, clear bool) *JSONRenderer {
	return &JSONRenderer{w: w, clear: clear}
}

func (r *JSONRenderer) Render(st domain.StackStatus, _ bool) {
	if r.clear {
		fmt.Fprint(r.w, "\x1b[2J\x1b[H")
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(st)
}

func (r *JSONRenderer) RenderHelp() {}

func (r *JSONRenderer) RenderComplete() {
	fmt.Fprintln(r.w, "all checks complete")
}
