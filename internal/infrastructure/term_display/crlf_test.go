package term_display

import (
	"bytes"
	"errors"
	"testing"
)

func TestCRLFWriter_RewritesNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain line", "hello\n", "hello\r\n"},
		{"multiple lines", "a\nb\nc", "a\r\nb\r\nc"},
		{"no newline", "abc", "abc"},
		{"bare newlines", "\n\n", "\r\n\r\n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewCRLFWriter(&buf)

			n, err := w.Write([]byte(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != len(tt.in) {
				t.Errorf("expected n=%d (input bytes), got %d", len(tt.in), n)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// failAfterWriter accepts a fixed number of bytes and then errors.
type failAfterWriter struct {
	remaining int
}

func (f *failAfterWriter) Write(p []byte) (int, error) {
	if len(p) <= f.remaining {
		f.remaining -= len(p)
		return len(p), nil
	}
	n := f.remaining
	f.remaining = 0
	return n, errors.New("write failed")
}

func TestCRLFWriter_PartialFailureReportsConsumedBytes(t *testing.T) {
	// Downstream accepts "ab" then fails on the expanded "\r\n"; only the
	// two input bytes actually written may be reported.
	w := NewCRLFWriter(&failAfterWriter{remaining: 2})

	n, err := w.Write([]byte("ab\ncd"))
	if err == nil {
		t.Fatal("expected error from failing writer")
	}
	if n != 2 {
		t.Errorf("expected 2 consumed input bytes, got %d", n)
	}
}
