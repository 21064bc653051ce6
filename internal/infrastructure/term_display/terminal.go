package term_display

import (
	"os"
	"sync"

	"github.com/charmbracelet/x/term"
)

// SetupTerminal switches stdin to raw mode so single keypresses arrive
// without a newline. The returned restore runs at most once and is safe
// to call from both a defer and a signal path. On a non-terminal stdin it
// is a no-op.
func SetupTerminal() (restore func(), err error) {
	fd := os.Stdin.Fd()
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { _ = term.Restore(fd, state) })
	}, nil
}

// KeyReader buffers at most one pending keypress from stdin.
type KeyReader struct {
	ch chan byte
}

// NewKeyReader starts draining stdin. The reader goroutine lives for the
// remainder of the process; watch mode is the last thing the process does.
func NewKeyReader() *KeyReader {
	k := &KeyReader{ch: make(chan byte, 1)}
	go func() {
		var buf [1]byte
		for {
			n, err := os.Stdin.Read(buf[:])
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case k.ch <- buf[0]:
			default: // already one key buffered, drop the rest
			}
		}
	}()
	return k
}

// Poll returns the buffered keypress, if any, without blocking.
func (k *KeyReader) Poll() (byte, bool) {
	select {
	case b := <-k.ch:
		return b, true
	default:
		return 0, false
	}
}
