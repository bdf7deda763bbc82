package argbind

import (
	"fmt"
	"strings"
	"unicode"
)

// wrappingWriter accumulates written text and wraps it at word boundaries to
// a fixed width, prepending the current line prefix to every new line.
type wrappingWriter struct {
	data      []rune
	width     int
	remaining int
	prefix    string
}

func newWrappingWriter(width int) (*wrappingWriter, error) {
	if width <= 0 {
		return nil, fmt.Errorf("illegal width: %d", width)
	}
	return &wrappingWriter{width: width, remaining: width}, nil
}

func (w *wrappingWriter) setLinePrefix(prefix string) error {
	if len(prefix) >= w.width {
		return fmt.Errorf("invalid prefix '%s': too large for width %d", prefix, w.width)
	} else if strings.Contains(prefix, "\n") {
		return fmt.Errorf("invalid prefix '%s': cannot contain new lines", prefix)
	}
	w.prefix = prefix
	return nil
}

func (w *wrappingWriter) Write(p []byte) (n int, err error) {
	srcRunes := []rune(string(p))
	for i := 0; i < len(srcRunes); i++ {
		r := srcRunes[i]
		if r == '\n' {
			if len(w.data) == 0 || (i > 0 && w.data[len(w.data)-1] == '\n') {
				w.data = append(w.data, []rune(w.prefix)...)
			}
			w.data = append(w.data, r)
			w.remaining = w.width
		} else if w.remaining == 0 {
			for j := len(w.data) - 1; j >= 0; j-- {
				rr := w.data[j]
				if rr == '\n' {
					// Current line has no space; just keep writing this line without splitting it
					w.data = append(w.data, r)
					break
				} else if len(w.data)-j+len(w.prefix) >= w.width {
					// Current line is already at width-length (including prefix) - just keep writing
					w.data = append(w.data, r)
					break
				} else if unicode.IsSpace(rr) {
					var runesBeforeSpace, runesAfterSpace []rune
					runesBeforeSpace = w.data[0 : j+1]
					if j < len(w.data)-1 {
						runesAfterSpace = w.data[j+1:]
					}
					w.data = make([]rune, 0, len(runesBeforeSpace)+len(runesAfterSpace)+1)
					w.data = append(w.data, runesBeforeSpace...)
					w.data = append(w.data, '\n')
					w.data = append(w.data, []rune(w.prefix)...)
					w.data = append(w.data, runesAfterSpace...)
					w.data = append(w.data, r)

					// Remaining characters now equal width minus text after last space, minus the char we just wrote
					w.remaining = w.width - len(w.prefix) - len(runesAfterSpace) - 1
					if w.remaining < 0 {
						w.remaining = 0
					}
					break
				}
			}
		} else {
			if len(w.data) == 0 || w.data[len(w.data)-1] == '\n' {
				w.data = append(w.data, []rune(w.prefix)...)
				w.remaining -= len(w.prefix)
			}
			w.data = append(w.data, r)
			w.remaining--
		}
	}
	return len(p), nil
}

func (w *wrappingWriter) String() string {
	return string(w.data)
}
