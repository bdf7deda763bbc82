package argbind

import (
	"fmt"
	"strings"

	"github.com/arikkfir/argbind/seqs"
)

// renderHelp renders a formatted usage/help block for the schema: the usage
// line followed by one row per attribute with its flag form, help text,
// default and choices.
func renderHelp(s *schema, width int) (string, error) {
	ww, err := newWrappingWriter(width)
	if err != nil {
		return "", err
	}

	prefix4 := strings.Repeat(" ", 4)
	prefix8 := strings.Repeat(" ", 8)

	// Usage line
	_, _ = fmt.Fprintln(ww, "Usage:")
	_ = ww.setLinePrefix(prefix4)
	_, _ = fmt.Fprint(ww, s.name+" ")
	_ = ww.setLinePrefix(prefix8)
	space := false
	for _, a := range s.attrs {
		if space {
			_, _ = fmt.Fprint(ww, " ")
		} else {
			space = true
		}
		_, _ = fmt.Fprint(ww, flagUsageToken(a.name, a.metavar, a.required))
	}
	_ = ww.setLinePrefix("")
	_, _ = fmt.Fprintln(ww)
	_, _ = fmt.Fprintln(ww)

	if len(s.attrs) == 0 {
		return ww.String(), nil
	}

	// Attribute rows
	_, _ = fmt.Fprintln(ww, "Attributes:")
	_ = ww.setLinePrefix(prefix4)

	tokens := make(map[string]string)
	tokensColWidth := 0
	for _, a := range s.attrs {
		token := flagUsageToken(a.name, a.metavar, a.required)
		tokens[a.name] = token
		if len(token) > tokensColWidth {
			tokensColWidth = len(token)
		}
	}
	helpStartColumn := tokensColWidth + (10 - tokensColWidth%10)

	for _, a := range s.attrs {
		token := tokens[a.name]
		_, _ = fmt.Fprint(ww, token)
		_, _ = fmt.Fprint(ww, strings.Repeat(" ", helpStartColumn-len(token)))
		_ = ww.setLinePrefix(prefix4 + strings.Repeat(" ", helpStartColumn))

		hasHelp := a.help != ""
		var sep string
		if hasHelp {
			_, _ = fmt.Fprint(ww, a.help)
			sep = " ("
		}
		if a.defaultSet {
			if sep != "" {
				_, _ = fmt.Fprint(ww, sep)
			}
			_, _ = fmt.Fprintf(ww, "default value: %s", formatValue(a.defaultValue))
			sep = ", "
		}
		if len(a.choices) > 0 {
			if sep != "" {
				_, _ = fmt.Fprint(ww, sep)
			}
			_, _ = fmt.Fprintf(ww, "choices: %s", seqs.Flatten(a.choices, ", "))
		}
		if hasHelp && sep != " (" {
			_, _ = fmt.Fprint(ww, ")")
		}

		_ = ww.setLinePrefix(prefix4)
		_, _ = fmt.Fprintln(ww)
	}
	_ = ww.setLinePrefix("")

	return ww.String(), nil
}
