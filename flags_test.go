package argbind

import (
	"errors"
	"reflect"
	"testing"

	. "github.com/arikkfir/justest"

	"github.com/arikkfir/argbind/enumset"
)

func TestFlagParser(t *testing.T) {
	t.Parallel()

	type testCase struct {
		regs           []flagRegistration
		arguments      []string
		expectedError  string
		expectedValues map[string]any
	}

	testCases := map[string]testCase{
		"switch present yields the const value": {
			regs: []flagRegistration{
				{Name: "verbose", Action: actionSwitch, Type: reflect.TypeOf(false), Const: true},
			},
			arguments:      []string{"--verbose"},
			expectedValues: map[string]any{"verbose": true},
		},
		"switch absent yields the zero value": {
			regs: []flagRegistration{
				{Name: "verbose", Action: actionSwitch, Type: reflect.TypeOf(false), Const: true},
			},
			arguments:      []string{},
			expectedValues: map[string]any{"verbose": false},
		},
		"accumulator preserves occurrence order": {
			regs: []flagRegistration{
				{Name: "tag", Action: actionAccumulate, Type: reflect.TypeOf([]string{})},
			},
			arguments:      []string{"--tag", "a", "--tag", "b", "--tag", "c"},
			expectedValues: map[string]any{"tag": []string{"a", "b", "c"}},
		},
		"accumulator converts every occurrence to the element type": {
			regs: []flagRegistration{
				{Name: "num", Action: actionAccumulate, Type: reflect.TypeOf([]int{})},
			},
			arguments:      []string{"--num", "1", "--num", "2"},
			expectedValues: map[string]any{"num": []int{1, 2}},
		},
		"accumulator falls back to its default": {
			regs: []flagRegistration{
				{Name: "tag", Action: actionAccumulate, Type: reflect.TypeOf([]string{}), Default: []string{"x", "y"}, DefaultSet: true},
			},
			arguments:      []string{},
			expectedValues: map[string]any{"tag": []string{"x", "y"}},
		},
		"scalar is converted to the declared type": {
			regs: []flagRegistration{
				{Name: "port", Action: actionScalar, Type: reflect.TypeOf(0)},
			},
			arguments:      []string{"--port", "8080"},
			expectedValues: map[string]any{"port": 8080},
		},
		"scalar without value or default is absent": {
			regs: []flagRegistration{
				{Name: "host", Action: actionScalar, Type: reflect.TypeOf("")},
			},
			arguments:      []string{},
			expectedValues: map[string]any{},
		},
		"unknown flags are tolerated and discarded": {
			regs: []flagRegistration{
				{Name: "host", Action: actionScalar, Type: reflect.TypeOf("")},
			},
			arguments:      []string{"--bogus=1", "--host", "example.com"},
			expectedValues: map[string]any{"host": "example.com"},
		},
		"missing required flag": {
			regs: []flagRegistration{
				{Name: "name", Action: actionScalar, Type: reflect.TypeOf(""), Required: true},
			},
			arguments:     []string{},
			expectedError: `^argument error: required flag is missing: --name$`,
		},
		"malformed scalar value": {
			regs: []flagRegistration{
				{Name: "port", Action: actionScalar, Type: reflect.TypeOf(0)},
			},
			arguments:     []string{"--port", "abc"},
			expectedError: `^argument error: invalid value 'abc' for flag 'port': invalid syntax$`,
		},
		"value outside the choice set": {
			regs: []flagRegistration{
				{Name: "color", Action: actionScalar, Type: reflect.TypeOf(""), Choices: []string{"RED", "GREEN", "BLUE"}},
			},
			arguments:     []string{"--color", "YELLOW"},
			expectedError: `^argument error: invalid value 'YELLOW' for flag '--color': unknown member 'YELLOW': expected members are: RED, GREEN, BLUE$`,
		},
		"value inside the choice set": {
			regs: []flagRegistration{
				{Name: "color", Action: actionScalar, Type: reflect.TypeOf(""), Choices: []string{"RED", "GREEN", "BLUE"}},
			},
			arguments:      []string{"--color", "GREEN"},
			expectedValues: map[string]any{"color": "GREEN"},
		},
		"arity mismatch": {
			regs: []flagRegistration{
				{Name: "pair", Action: actionAccumulate, Type: reflect.TypeOf([]string{}), Arity: 2},
			},
			arguments:     []string{"--pair", "a"},
			expectedError: `^argument error: flag '--pair' expects exactly 2 occurrences, got 1$`,
		},
		"arity satisfied": {
			regs: []flagRegistration{
				{Name: "pair", Action: actionAccumulate, Type: reflect.TypeOf([]string{}), Arity: 2},
			},
			arguments:      []string{"--pair", "a", "--pair", "b"},
			expectedValues: map[string]any{"pair": []string{"a", "b"}},
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			values, err := newFlagParser("test", tc.regs).parse(tc.arguments)
			if tc.expectedError != "" {
				With(t).Verify(err).Will(Fail(tc.expectedError)).OrFail()
			} else {
				With(t).Verify(err).Will(BeNil()).OrFail()
				With(t).Verify(values).Will(EqualTo(tc.expectedValues)).OrFail()
			}
		})
	}
}

func TestFlagParserErrorDetails(t *testing.T) {
	t.Parallel()

	regs := []flagRegistration{
		{Name: "color", Action: actionScalar, Type: reflect.TypeOf(""), Metavar: "STRING", Choices: []string{"RED", "GREEN", "BLUE"}, Required: true},
	}

	_, err := newFlagParser("palette", regs).parse([]string{"--color", "YELLOW"})

	var parseErr *ErrParse
	With(t).Verify(errors.As(err, &parseErr)).Will(EqualTo(true)).OrFail()
	With(t).Verify(parseErr.Usage).Will(EqualTo("Usage: palette --color=STRING")).OrFail()

	var unknownMember *enumset.ErrUnknownMember
	With(t).Verify(errors.As(err, &unknownMember)).Will(EqualTo(true)).OrFail()
	With(t).Verify(unknownMember.Member).Will(EqualTo("YELLOW")).OrFail()
}
