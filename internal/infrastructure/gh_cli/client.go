// Package gh_cli resolves PRs and CI checks by shelling out to the GitHub
// CLI (gh). A non-zero exit from gh is an answer (no PR, no checks), not
// an outage; only spawn/IO failures are retried.
package gh_cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/avatarneil/stack-status/internal/domain"
	"github.com/cenkalti/backoff/v4"
)

const checkFields = "name,state,conclusion,startedAt,completedAt,detailsUrl,bucket"

type runner func(ctx context.Context, name string, args ...string) (string, error)

type Client struct {
	bin         string
	timeout     time.Duration
	retryBudget time.Duration
	run         runner
}

func New(bin string, timeout time.Duration) *Client {
	return &Client{
		bin:         bin,
		timeout:     timeout,
		retryBudget: 3 * time.Second,
		run:         runTool,
	}
}

func runTool(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s",
			name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// runRetry invokes gh, retrying transient failures. Non-zero exits are
// permanent: gh already ran and gave its verdict.
func (c *Client) runRetry(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var out string
	op := func() error {
		var err error
		out, err = c.run(ctx, c.bin, args...)
		if err != nil {
			var ee *exec.ExitError
			if errors.As(err, &ee) {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = time.Second
	bo.MaxElapsedTime = c.retryBudget

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return out, nil
}

// Installed probes for the gh binary. No retry: a missing binary does not
// come back in a few hundred milliseconds.
func (c *Client) Installed(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.run(ctx, c.bin, "--version")
	return err == nil
}

// ResolvePR returns the PR number for a branch. Every failure mode here,
// including "no PR exists", reports ok=false; this is never an error.
func (c *Client) ResolvePR(ctx context.Context, branch string) (int64, bool) {
	out, err := c.runRetry(ctx, "pr", "view", branch, "--json", "number", "--jq", ".number")
	if err != nil {
		return 0, false
	}

	n, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PRURL returns the PR web URL for a branch, or "" when unavailable.
func (c *Client) PRURL(ctx context.Context, branch string) string {
	out, err := c.runRetry(ctx, "pr", "view", branch, "--json", "url", "--jq", ".url")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// Checks fetches and normalizes the CI checks for a branch's PR. A gh
// non-zero exit yields an empty list; anything worse is a hard error that
// the caller must propagate.
func (c *Client) Checks(ctx context.Context, branch string) ([]domain.Check, error) {
	out, err := c.runRetry(ctx, "pr", "checks", branch, "--json", checkFields)
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return []domain.Check{}, nil
		}
		return nil, fmt.Errorf("gh pr checks %s: %w", branch, err)
	}

	var raw []checkDTO
	// Undecodable output degrades to zero checks, same as an empty list.
	_ = json.Unmarshal([]byte(out), &raw)

	checks := make([]domain.Check, 0, len(raw))
	for _, r := range raw {
		checks = append(checks, normalizeCheck(r))
	}
	return checks, nil
}
