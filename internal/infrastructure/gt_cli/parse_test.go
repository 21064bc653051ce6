package gt_cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avatarneil/stack-status/internal/domain"
)

func TestParseStackLog_BasicStack(t *testing.T) {
	out := "◉ feature-c\n│\n◯ feature-b\n│\n◯ main"

	branches := ParseStackLog(out)
	if len(branches) != 3 {
		t.Fatalf("expected 3 branches, got %d: %+v", len(branches), branches)
	}

	want := []domain.BranchRef{
		{Name: "feature-c", IsCurrent: true},
		{Name: "feature-b"},
		{Name: "main", IsTrunk: true},
	}
	for i, w := range want {
		if branches[i] != w {
			t.Errorf("branch[%d] = %+v, want %+v", i, branches[i], w)
		}
	}
}

func TestParseStackLog_TrunkNames(t *testing.T) {
	cases := []struct {
		name  string
		trunk bool
	}{
		{"main", true},
		{"master", true},
		{"develop", true},
		{"trunk", true},
		{"Main", false}, // case-sensitive
		{"mainline", false},
	}

	for _, tc := range cases {
		branches := ParseStackLog("◯ " + tc.name)
		if len(branches) != 1 {
			t.Fatalf("%s: expected 1 branch, got %d", tc.name, len(branches))
		}
		if branches[0].IsTrunk != tc.trunk {
			t.Errorf("%s: IsTrunk = %v, want %v", tc.name, branches[0].IsTrunk, tc.trunk)
		}
	}
}

func TestParseStackLog_SkipsNoise(t *testing.T) {
	out := strings.Join([]string{
		"",
		"   ",
		"│",
		"├─╮",
		"some stray output from the tool",
		"◯ ",    // glyph but no name
		"◉ │ ─", // glyph followed only by connectors
		"◯ feature-a",
	}, "\n")

	branches := ParseStackLog(out)
	if len(branches) != 1 || branches[0].Name != "feature-a" {
		t.Fatalf("expected only feature-a, got %+v", branches)
	}
}

func TestParseStackLog_NeverExceedsLineCount(t *testing.T) {
	inputs := []string{
		"",
		"◉ a\n◯ b\n◯ c",
		"junk\n◉◯ weird\n\n\n◯ main\n",
		strings.Repeat("◯ branch\n", 50),
	}
	for _, in := range inputs {
		lines := strings.Count(in, "\n") + 1
		if got := len(ParseStackLog(in)); got > lines {
			t.Errorf("parsed %d branches out of %d lines", got, lines)
		}
	}
}

func TestParseStackLog_NoGlyphsYieldsEmpty(t *testing.T) {
	if got := ParseStackLog("fatal: not a graphite repo\nrun gt init first"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestParseStackLog_TrunkOnly(t *testing.T) {
	branches := ParseStackLog("◉ main")
	if len(branches) != 1 || !branches[0].IsTrunk || !branches[0].IsCurrent {
		t.Fatalf("expected single current trunk, got %+v", branches)
	}
}

func fakeRunner(outputs map[string]string, errs map[string]error) runner {
	return func(ctx context.Context, name string, args ...string) (string, error) {
		key := name + " " + strings.Join(args, " ")
		if err := errs[key]; err != nil {
			return "", err
		}
		return outputs[key], nil
	}
}

func TestClient_StackFallsBackToNoTopology(t *testing.T) {
	c := New("gt", "git", time.Second)
	c.run = fakeRunner(nil, map[string]error{"gt log short": errors.New("exit status 1")})

	if _, err := c.Stack(context.Background()); !errors.Is(err, domain.ErrNoTopology) {
		t.Fatalf("expected ErrNoTopology, got %v", err)
	}

	// A listing with no recognizable glyphs is also "no topology".
	c.run = fakeRunner(map[string]string{"gt log short": "nothing to see"}, nil)
	if _, err := c.Stack(context.Background()); !errors.Is(err, domain.ErrNoTopology) {
		t.Fatalf("expected ErrNoTopology for glyphless output, got %v", err)
	}
}

func TestClient_CurrentBranch(t *testing.T) {
	c := New("gt", "git", time.Second)
	c.run = fakeRunner(map[string]string{"git rev-parse --abbrev-ref HEAD": "feature-x"}, nil)

	got, err := c.CurrentBranch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "feature-x" {
		t.Errorf("current branch = %q, want feature-x", got)
	}

	c.run = fakeRunner(nil, map[string]error{"git rev-parse --abbrev-ref HEAD": errors.New("not a git repo")})
	if _, err := c.CurrentBranch(context.Background()); err == nil {
		t.Fatal("expected hard error when HEAD cannot be resolved")
	}
}
