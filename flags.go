package argbind

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/pflag"

	"github.com/arikkfir/argbind/enumset"
)

// flagRegistration is the translated form of an attribute descriptor consumed
// by the flag parser adapter.
type flagRegistration struct {
	Name       string
	Action     actionKind
	Type       reflect.Type
	Default    any
	DefaultSet bool
	Const      any
	Choices    []string
	Metavar    string
	Required   bool
	Help       string
	Arity      int
}

// registration translates the descriptor into its flag registration.
func (a *Attribute) registration() flagRegistration {
	return flagRegistration{
		Name:       a.name,
		Action:     a.action,
		Type:       a.declaredType,
		Default:    a.defaultValue,
		DefaultSet: a.defaultSet,
		Const:      a.constValue,
		Choices:    a.choices,
		Metavar:    a.metavar,
		Required:   a.required,
		Help:       a.help,
		Arity:      a.arity,
	}
}

// flagParser wraps the pflag library. Each registration maps 1:1 onto one
// registered flag; parse failures are intercepted and surfaced as ErrParse
// instead of pflag's default print-usage-and-terminate behavior.
type flagParser struct {
	fs     *pflag.FlagSet
	regs   []flagRegistration
	texts  map[string]*string
	bools  map[string]*bool
	arrays map[string]*[]string
}

func newFlagParser(name string, regs []flagRegistration) *flagParser {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsWhitelist.UnknownFlags = true

	p := &flagParser{
		fs:     fs,
		regs:   regs,
		texts:  make(map[string]*string),
		bools:  make(map[string]*bool),
		arrays: make(map[string]*[]string),
	}
	for _, reg := range regs {
		switch reg.Action {
		case actionSwitch:
			def := false
			if reg.DefaultSet {
				def = reflect.ValueOf(reg.Default).Bool()
			}
			p.bools[reg.Name] = fs.Bool(reg.Name, def, reg.Help)
		case actionAccumulate:
			var def []string
			if reg.DefaultSet {
				dv := reflect.ValueOf(reg.Default)
				for i := 0; i < dv.Len(); i++ {
					def = append(def, formatValue(dv.Index(i).Interface()))
				}
			}
			p.arrays[reg.Name] = fs.StringArray(reg.Name, def, reg.Help)
		default:
			def := ""
			if reg.DefaultSet {
				def = formatValue(reg.Default)
			}
			p.texts[reg.Name] = fs.String(reg.Name, def, reg.Help)
		}
	}
	return p
}

// parse drives the wrapped library over the given arguments, tolerating and
// discarding unrecognized flags, and resolves every registration into its
// typed value.
func (p *flagParser) parse(arguments []string) (map[string]any, error) {
	if err := p.fs.Parse(arguments); err != nil {
		return nil, &ErrParse{Cause: err, Message: err.Error(), Usage: p.usage()}
	}

	values := make(map[string]any)
	for _, reg := range p.regs {
		v, ok, err := p.resolve(reg)
		if err != nil {
			return nil, err
		}
		if ok {
			values[reg.Name] = v
		}
	}
	return values, nil
}

// resolve returns the typed value of one registration, and whether a value
// (supplied or default) exists for it at all.
func (p *flagParser) resolve(reg flagRegistration) (any, bool, error) {
	supplied := p.fs.Changed(reg.Name)

	switch reg.Action {
	case actionSwitch:
		// Presence-only: present means the const value (commonly true),
		// absent means the default
		if supplied {
			return reg.Const, true, nil
		}
		if reg.DefaultSet {
			return reg.Default, true, nil
		}
		return reflect.Zero(reg.Type).Interface(), true, nil

	case actionAccumulate:
		if !supplied {
			if reg.Required {
				return nil, false, p.requiredError(reg)
			}
			if reg.DefaultSet {
				return reg.Default, true, nil
			}
			return nil, false, nil
		}
		raw := *p.arrays[reg.Name]
		if err := p.checkChoices(reg, raw); err != nil {
			return nil, false, err
		}
		if reg.Arity > 0 && len(raw) != reg.Arity {
			message := fmt.Sprintf("flag '--%s' expects exactly %d occurrences, got %d", reg.Name, reg.Arity, len(raw))
			return nil, false, &ErrParse{Message: message, Usage: p.usage()}
		}
		v, err := convertSlice(reg.Type, reg.Name, raw)
		if err != nil {
			return nil, false, &ErrParse{Cause: err, Message: err.Error(), Usage: p.usage()}
		}
		return v, true, nil

	default:
		if !supplied {
			if reg.Required {
				return nil, false, p.requiredError(reg)
			}
			if reg.DefaultSet {
				return reg.Default, true, nil
			}
			return nil, false, nil
		}
		raw := *p.texts[reg.Name]
		if err := p.checkChoices(reg, []string{raw}); err != nil {
			return nil, false, err
		}
		v, err := convertValue(reg.Type, reg.Name, raw)
		if err != nil {
			return nil, false, &ErrParse{Cause: err, Message: err.Error(), Usage: p.usage()}
		}
		return v, true, nil
	}
}

func (p *flagParser) requiredError(reg flagRegistration) error {
	return &ErrParse{Message: fmt.Sprintf("required flag is missing: --%s", reg.Name), Usage: p.usage()}
}

// checkChoices validates every supplied token against the registration's
// closed member set, if one was declared.
func (p *flagParser) checkChoices(reg flagRegistration, tokens []string) error {
	if len(reg.Choices) == 0 {
		return nil
	}
	members := enumset.New(reg.Choices...)
	for _, token := range tokens {
		if _, err := members.FromName(token); err != nil {
			message := fmt.Sprintf("invalid value '%s' for flag '--%s': %s", token, reg.Name, err)
			return &ErrParse{Cause: err, Message: message, Usage: p.usage()}
		}
	}
	return nil
}

// usage renders the single-line usage form of every registered flag.
func (p *flagParser) usage() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Usage: %s", p.fs.Name())
	for _, reg := range p.regs {
		b.WriteString(" ")
		b.WriteString(flagUsageToken(reg.Name, reg.Metavar, reg.Required))
	}
	return b.String()
}

func flagUsageToken(name, metavar string, required bool) string {
	token := "--" + name
	if metavar != "" {
		token += "=" + metavar
	}
	if !required {
		token = "[" + token + "]"
	}
	return token
}
