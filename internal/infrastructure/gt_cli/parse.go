package gt_cli

import (
	"strings"

	"github.com/avatarneil/stack-status/internal/domain"
)

const (
	currentGlyph = "◉"
	otherGlyph   = "◯"

	// Everything a `gt log short` line may decorate a branch name with:
	// the branch glyphs, the trunk dot, connectors, corners and junctions.
	treeCutset = "◉◯●│─╭╮╰╯├┤┬┴┼ \t"
)

var trunkNames = map[string]bool{
	"main":    true,
	"master":  true,
	"develop": true,
	"trunk":   true,
}

// ParseStackLog parses tree-art stack output into branch descriptors,
// preserving line order. It never fails: lines without a branch glyph and
// lines whose name strips to nothing are dropped.
//
// Example input:
//
//	◉ feature-c
//	│
//	◯ feature-b
//	│
//	◯ main
func ParseStackLog(raw string) []domain.BranchRef {
	var branches []domain.BranchRef

	for _, line := range strings.Split(raw, "\n") {
		ci := strings.Index(line, currentGlyph)
		oi := strings.Index(line, otherGlyph)
		if ci < 0 && oi < 0 {
			continue
		}

		// Current glyph wins a tie; in practice one glyph per line.
		isCurrent := ci >= 0 && (oi < 0 || ci <= oi)
		at := oi
		glyph := otherGlyph
		if isCurrent {
			at = ci
			glyph = currentGlyph
		}

		name := strings.Trim(line[at+len(glyph):], treeCutset)
		if name == "" {
			continue
		}

		branches = append(branches, domain.BranchRef{
			Name:      name,
			IsCurrent: isCurrent,
			IsTrunk:   trunkNames[name],
		})
	}

	return branches
}
