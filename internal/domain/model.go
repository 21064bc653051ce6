package domain

import (
	"encoding/json"
	"fmt"
)

// CheckStatus is the closed set of states a CI check can be reported in.
// Provider states outside this set must be mapped explicitly by the
// normalizer; there is no passthrough.
type CheckStatus int

const (
	StatusUnknown CheckStatus = iota
	StatusPassed
	StatusFailed
	StatusRunning
	StatusQueued
	StatusSkipped
	StatusCancelled
)

func (s CheckStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusRunning:
		return "running"
	case StatusQueued:
		return "queued"
	case StatusSkipped:
		return "skipped"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *CheckStatus) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	switch name {
	case "passed":
		*s = StatusPassed
	case "failed":
		*s = StatusFailed
	case "running":
		*s = StatusRunning
	case "queued":
		*s = StatusQueued
	case "skipped":
		*s = StatusSkipped
	case "cancelled":
		*s = StatusCancelled
	default:
		*s = StatusUnknown
	}
	return nil
}

// BranchRef is one entry of a parsed stack listing, top of stack first.
type BranchRef struct {
	Name      string
	IsCurrent bool
	IsTrunk   bool
}

// Check is one normalized CI check. Nil pointer fields mean the provider
// did not supply the value; they serialize as null.
type Check struct {
	Name         string      `json:"name"`
	Status       CheckStatus `json:"status"`
	Conclusion   *string     `json:"conclusion"`
	DurationSecs *uint64     `json:"duration_secs"`
	URL          *string     `json:"url"`
}

// CheckSummary is the per-branch aggregate of a check list.
type CheckSummary struct {
	Total     int         `json:"total"`
	Passed    int         `json:"passed"`
	Failed    int         `json:"failed"`
	Running   int         `json:"running"`
	Queued    int         `json:"queued"`
	Skipped   int         `json:"skipped"`
	Cancelled int         `json:"cancelled"`
	Overall   CheckStatus `json:"overall"`
}

// Summarize reduces a check list to counts and one overall status. Any
// failure dominates; outstanding work (running or queued) reports as
// running even when some checks already passed.
func Summarize(checks []Check) CheckSummary {
	sum := CheckSummary{Total: len(checks)}

	for _, c := range checks {
		switch c.Status {
		case StatusPassed:
			sum.Passed++
		case StatusFailed:
			sum.Failed++
		case StatusRunning:
			sum.Running++
		case StatusQueued:
			sum.Queued++
		case StatusSkipped:
			sum.Skipped++
		case StatusCancelled:
			sum.Cancelled++
		case StatusUnknown:
		}
	}

	switch {
	case sum.Failed > 0:
		sum.Overall = StatusFailed
	case sum.Running > 0 || sum.Queued > 0:
		sum.Overall = StatusRunning
	case sum.Passed > 0:
		sum.Overall = StatusPassed
	default:
		sum.Overall = StatusUnknown
	}

	return sum
}

// Text renders the summary in the same precedence order as Overall.
func (s CheckSummary) Text() string {
	switch {
	case s.Failed > 0:
		return fmt.Sprintf("%d failed", s.Failed)
	case s.Running > 0 || s.Queued > 0:
		return fmt.Sprintf("%d/%d running", s.Passed, s.Total)
	case s.Passed > 0:
		return fmt.Sprintf("%d/%d passed", s.Passed, s.Total)
	default:
		return "no checks"
	}
}

// BranchStatus is one branch of a composed snapshot. Trunk branches never
// carry PR or check data.
type BranchStatus struct {
	Branch    string        `json:"branch"`
	IsCurrent bool          `json:"is_current"`
	IsTrunk   bool          `json:"is_trunk"`
	PR        *int64        `json:"pr"`
	Checks    []Check       `json:"checks"`
	Summary   *CheckSummary `json:"summary"`
}

// StackStatus is one complete snapshot of the stack. Branch order matches
// the topology listing; Timestamp is the composition moment.
type StackStatus struct {
	Branches  []BranchStatus `json:"branches"`
	Timestamp string         `json:"timestamp"`
}

// AllComplete reports whether nothing is outstanding: every branch is
// trunk, has no summary (no PR, nothing to wait for), or has a summary
// with no running or queued checks.
func (st StackStatus) AllComplete() bool {
	for _, b := range st.Branches {
		if b.IsTrunk || b.Summary == nil {
			continue
		}
		if b.Summary.Running != 0 || b.Summary.Queued != 0 {
			return false
		}
	}
	return true
}
