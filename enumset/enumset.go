// Package enumset validates tokens against a closed set of string-backed
// enumeration members.
package enumset

import (
	"fmt"

	"github.com/arikkfir/argbind/seqs"
)

type ErrUnknownMember struct {
	Member  string
	Members []string
}

func (e *ErrUnknownMember) Error() string {
	return fmt.Sprintf("unknown member '%s': expected members are: %s", e.Member, seqs.Flatten(e.Members, ", "))
}

// Set is a closed, ordered set of string-backed enumeration members.
type Set[T ~string] struct {
	members []T
}

// New creates a set of the given members, preserving declaration order.
func New[T ~string](members ...T) Set[T] {
	return Set[T]{members: members}
}

// Has reports whether the given name is a declared member.
func (s Set[T]) Has(name string) bool {
	for _, member := range s.members {
		if string(member) == name {
			return true
		}
	}
	return false
}

// Members returns the declared members in declaration order.
func (s Set[T]) Members() []T {
	members := make([]T, len(s.members))
	copy(members, s.members)
	return members
}

// FromName returns the member matching the given name exactly. An unknown
// name fails with ErrUnknownMember listing every declared member.
func (s Set[T]) FromName(name string) (T, error) {
	for _, member := range s.members {
		if string(member) == name {
			return member, nil
		}
	}
	names := make([]string, len(s.members))
	for i, member := range s.members {
		names[i] = string(member)
	}
	var zero T
	return zero, &ErrUnknownMember{Member: name, Members: names}
}
