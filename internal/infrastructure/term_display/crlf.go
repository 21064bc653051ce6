package term_display

import (
	"bytes"
	"io"
)

// crlfWriter rewrites \n to \r\n. Raw mode disables the terminal's output
// post-processing, so watch-mode output must carry its own returns.
type crlfWriter struct {
	w io.Writer
}

func NewCRLFWriter(w io.Writer) io.Writer { return &crlfWriter{w: w} }

// Write reports the number of bytes of p consumed, not the number of
// expanded bytes written downstream.
func (c *crlfWriter) Write(p []byte) (int, error) {
	var n int
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			m, err := c.w.Write(p)
			return n + m, err
		}
		if i > 0 {
			m, err := c.w.Write(p[:i])
			n += m
			if err != nil {
				return n, err
			}
		}
		if _, err := c.w.Write([]byte{'\r', '\n'}); err != nil {
			return n, err
		}
		n++
		p = p[i+1:]
	}
	return n, nil
}
