// Package notify_libnotify sends desktop notifications via notify-send.
package notify_libnotify

import (
	"context"
	"os/exec"
	"strings"
)

type Notifier struct {
	soft bool
}

func New() *Notifier { return &Notifier{} }

// NewSoft returns a notifier that swallows delivery failures; watch mode
// must not die because notify-send is missing.
func NewSoft() *Notifier { return &Notifier{soft: true} }

func (n *Notifier) Notify(ctx context.Context, title, body, url string) error {
	if strings.TrimSpace(url) != "" {
		if body == "" {
			body = url
		} else {
			body = body + "\n" + url
		}
	}

	cmd := exec.CommandContext(ctx, "notify-send", "--app-name=stack-status", title, body)
	if err := cmd.Run(); err != nil {
		if n.soft {
			return nil
		}
		return err
	}
	return nil
}
