package argbind

import (
	"errors"
	"fmt"

	"github.com/arikkfir/argbind/seqs"
)

// lineSeparator joins the string forms of a flattened error chain.
const lineSeparator = "\n"

// ErrConfiguration indicates a defect in an attribute declaration. It is
// raised during schema construction, before any process input is consumed.
type ErrConfiguration struct {
	Cause     error
	Attribute string
}

func (e *ErrConfiguration) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("invalid attribute declaration '%s': %s", e.Attribute, e.Cause)
	}
	return fmt.Sprintf("invalid attribute declaration: %s", e.Cause)
}

func (e *ErrConfiguration) Unwrap() error {
	return e.Cause
}

// ErrParse indicates a defect in the user-supplied input: a missing required
// flag, an invalid choice or a malformed value. It is recoverable by the
// caller and carries the generated usage line as part of its description.
type ErrParse struct {
	Cause   error
	Message string
	Usage   string
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("argument error: %s", e.Message)
}

func (e *ErrParse) Unwrap() error {
	return e.Cause
}

// ErrAttributeAccess indicates an attempt to read or write an attribute that
// lacks the corresponding accessor.
type ErrAttributeAccess struct {
	Attribute string
	Op        string
}

func (e *ErrAttributeAccess) Error() string {
	return fmt.Sprintf("attribute '%s' has no %s accessor", e.Attribute, e.Op)
}

// ErrInvalidValue indicates a value that could not be converted to a flag's
// declared type.
type ErrInvalidValue struct {
	Cause error
	Value string
	Flag  string
}

func (e *ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value '%s' for flag '%s': %s", e.Value, e.Flag, e.Cause)
}

func (e *ErrInvalidValue) Unwrap() error {
	return e.Cause
}

// UnwrapChain expands the given error and its chain of causes into a list
// with the deepest (root) cause first and the error itself last.
func UnwrapChain(err error) []error {
	if err == nil {
		return nil
	}
	return seqs.Unwrap(err, func(e error) (error, bool) {
		cause := errors.Unwrap(e)
		return cause, cause != nil
	})
}

// Flatten joins the string form of every error in the given error's chain,
// deepest cause first, into a single multi-line diagnostic report.
func Flatten(err error) string {
	chain := UnwrapChain(err)
	messages := make([]string, len(chain))
	for i, e := range chain {
		messages[i] = e.Error()
	}
	return seqs.Flatten(messages, lineSeparator)
}
