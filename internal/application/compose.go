package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avatarneil/stack-status/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Composer assembles one complete StackStatus snapshot from the topology,
// PR, and check collaborators. Snapshots are values: nothing here is
// mutated after Compose returns and nothing persists between calls.
type Composer struct {
	log    *zap.Logger
	topo   domain.TopologyProvider
	prs    domain.PRResolver
	checks domain.CheckProvider

	// fallbackBranch overrides HEAD resolution when no topology is
	// available (the --branch flag). Empty means ask the provider.
	fallbackBranch string
}

// NewComposer builds a composer. prs and checks may be nil when the check
// collaborator is unavailable; every non-trunk branch then reports no PR.
func NewComposer(log *zap.Logger, topo domain.TopologyProvider, prs domain.PRResolver, checks domain.CheckProvider, fallbackBranch string) *Composer {
	return &Composer{
		log:            log,
		topo:           topo,
		prs:            prs,
		checks:         checks,
		fallbackBranch: fallbackBranch,
	}
}

// Compose produces a fresh snapshot. Per-branch lookups run concurrently;
// each goroutine writes only its own slot, so branch order survives. A
// check-provider failure on any branch aborts the whole snapshot.
func (c *Composer) Compose(ctx context.Context) (domain.StackStatus, error) {
	refs, err := c.topo.Stack(ctx)
	switch {
	case errors.Is(err, domain.ErrNoTopology):
		refs, err = c.fallbackRefs(ctx)
		if err != nil {
			return domain.StackStatus{}, err
		}
	case err != nil:
		return domain.StackStatus{}, fmt.Errorf("stack topology: %w", err)
	}

	branches := make([]domain.BranchStatus, len(refs))
	g, gctx := errgroup.WithContext(ctx)

	for i, ref := range refs {
		branches[i] = domain.BranchStatus{
			Branch:    ref.Name,
			IsCurrent: ref.IsCurrent,
			IsTrunk:   ref.IsTrunk,
		}

		// Trunk never has a PR workflow; without a resolver nothing
		// below can be looked up either.
		if ref.IsTrunk || c.prs == nil || c.checks == nil {
			continue
		}

		g.Go(func() error {
			pr, ok := c.prs.ResolvePR(gctx, ref.Name)
			if !ok {
				return nil
			}
			branches[i].PR = &pr

			checks, err := c.checks.Checks(gctx, ref.Name)
			if err != nil {
				return err
			}
			if checks == nil {
				checks = []domain.Check{}
			}

			sum := domain.Summarize(checks)
			branches[i].Checks = checks
			branches[i].Summary = &sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.StackStatus{}, fmt.Errorf("compose snapshot: %w", err)
	}

	st := domain.StackStatus{
		Branches:  branches,
		Timestamp: time.Now().Format("15:04:05"),
	}

	c.log.Debug("snapshot composed",
		zap.Int("branches", len(st.Branches)),
		zap.Bool("all_complete", st.AllComplete()),
	)
	return st, nil
}

func (c *Composer) fallbackRefs(ctx context.Context) ([]domain.BranchRef, error) {
	name := c.fallbackBranch
	if name == "" {
		var err error
		name, err = c.topo.CurrentBranch(ctx)
		if err != nil {
			return nil, err
		}
	}

	c.log.Debug("no topology, using single-branch fallback", zap.String("branch", name))
	return []domain.BranchRef{{Name: name, IsCurrent: true}}, nil
}
