package gh_cli

import (
	"time"

	"github.com/avatarneil/stack-status/internal/domain"
)

// checkDTO mirrors the fields requested from `gh pr checks --json`.
type checkDTO struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Conclusion  string `json:"conclusion"`
	StartedAt   string `json:"startedAt"`
	CompletedAt string `json:"completedAt"`
	DetailsURL  string `json:"detailsUrl"`
	Bucket      string `json:"bucket"`
}

// normalizeCheck maps one raw gh record into the closed status set. It is
// total: unknown buckets map to StatusUnknown and bad timestamps drop the
// duration, never an error.
func normalizeCheck(raw checkDTO) domain.Check {
	var status domain.CheckStatus
	switch raw.Bucket {
	case "pass":
		status = domain.StatusPassed
	case "fail":
		status = domain.StatusFailed
	case "pending":
		if raw.State == "IN_PROGRESS" {
			status = domain.StatusRunning
		} else {
			status = domain.StatusQueued
		}
	case "skipping":
		status = domain.StatusSkipped
	case "cancel":
		status = domain.StatusCancelled
	default:
		status = domain.StatusUnknown
	}

	return domain.Check{
		Name:         raw.Name,
		Status:       status,
		Conclusion:   optString(raw.Conclusion),
		DurationSecs: duration(raw.StartedAt, raw.CompletedAt),
		URL:          optString(raw.DetailsURL),
	}
}

// duration returns whole seconds between two RFC-3339 timestamps, clamped
// at zero. Any missing or unparseable timestamp yields nil.
func duration(startedAt, completedAt string) *uint64 {
	if startedAt == "" || completedAt == "" {
		return nil
	}

	start, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil
	}
	end, err := time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return nil
	}

	secs := int64(end.Sub(start) / time.Second)
	if secs < 0 {
		secs = 0
	}
	d := uint64(secs)
	return &d
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
