package gh_cli

import (
	"reflect"
	"testing"

	"github.com/avatarneil/stack-status/internal/domain"
)

func TestNormalizeCheck_BucketMapping(t *testing.T) {
	cases := []struct {
		bucket string
		state  string
		want   domain.CheckStatus
	}{
		{"pass", "COMPLETED", domain.StatusPassed},
		{"fail", "COMPLETED", domain.StatusFailed},
		{"pending", "IN_PROGRESS", domain.StatusRunning},
		{"pending", "QUEUED", domain.StatusQueued},
		{"pending", "", domain.StatusQueued},
		{"skipping", "COMPLETED", domain.StatusSkipped},
		{"cancel", "COMPLETED", domain.StatusCancelled},
		{"something-new", "", domain.StatusUnknown},
		{"", "", domain.StatusUnknown},
	}

	for _, tc := range cases {
		got := normalizeCheck(checkDTO{Name: "build", Bucket: tc.bucket, State: tc.state})
		if got.Status != tc.want {
			t.Errorf("bucket=%q state=%q: status = %v, want %v", tc.bucket, tc.state, got.Status, tc.want)
		}
	}
}

func TestNormalizeCheck_Duration(t *testing.T) {
	cases := []struct {
		name      string
		start     string
		end       string
		want      *uint64
		wantSet   bool
		wantValue uint64
	}{
		{name: "whole seconds", start: "2024-05-01T10:00:00Z", end: "2024-05-01T10:02:30Z", wantSet: true, wantValue: 150},
		{name: "clamped at zero", start: "2024-05-01T10:05:00Z", end: "2024-05-01T10:00:00Z", wantSet: true, wantValue: 0},
		{name: "missing start", end: "2024-05-01T10:00:00Z"},
		{name: "missing end", start: "2024-05-01T10:00:00Z"},
		{name: "garbage start", start: "yesterday", end: "2024-05-01T10:00:00Z"},
		{name: "garbage end", start: "2024-05-01T10:00:00Z", end: "soon"},
	}

	for _, tc := range cases {
		got := normalizeCheck(checkDTO{StartedAt: tc.start, CompletedAt: tc.end})
		if !tc.wantSet {
			if got.DurationSecs != nil {
				t.Errorf("%s: duration = %d, want absent", tc.name, *got.DurationSecs)
			}
			continue
		}
		if got.DurationSecs == nil {
			t.Errorf("%s: duration absent, want %d", tc.name, tc.wantValue)
			continue
		}
		if *got.DurationSecs != tc.wantValue {
			t.Errorf("%s: duration = %d, want %d", tc.name, *got.DurationSecs, tc.wantValue)
		}
	}
}

func TestNormalizeCheck_Deterministic(t *testing.T) {
	raw := checkDTO{
		Name:        "unit-tests",
		State:       "COMPLETED",
		Conclusion:  "success",
		StartedAt:   "2024-05-01T10:00:00Z",
		CompletedAt: "2024-05-01T10:01:00Z",
		DetailsURL:  "https://example.com/run/1",
		Bucket:      "pass",
	}

	a := normalizeCheck(raw)
	b := normalizeCheck(raw)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("normalization is not deterministic: %+v vs %+v", a, b)
	}
	if a.Conclusion == nil || *a.Conclusion != "success" {
		t.Errorf("conclusion not carried through: %+v", a)
	}
	if a.URL == nil || *a.URL != "https://example.com/run/1" {
		t.Errorf("url not carried through: %+v", a)
	}
}

func TestNormalizeCheck_AbsentFieldsDegrade(t *testing.T) {
	got := normalizeCheck(checkDTO{Name: "lint"})
	if got.Status != domain.StatusUnknown {
		t.Errorf("status = %v, want unknown", got.Status)
	}
	if got.Conclusion != nil || got.URL != nil || got.DurationSecs != nil {
		t.Errorf("absent fields should stay nil: %+v", got)
	}
}
