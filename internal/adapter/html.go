package adapter

import (
	"fmt"
	"html"
	"io"
)

// htmlWriter remembers the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}

	_, h.err = io.WriteString(h.w, s)
}

// printf writes formatted markup. Callers escape user text with esc.
func (h *htmlWriter) printf(format string, args ...interface{}) {
	if h.err != nil {
		return
	}

	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func esc(s string) string {
	return html.EscapeString(s)
}
