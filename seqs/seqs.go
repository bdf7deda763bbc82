// Package seqs provides generic helpers for slices and sequences, plus a
// bounded batch runner for side-effecting actions.
package seqs

import (
	"fmt"
	"strings"
)

// Flatten joins the string form of every non-empty item with the given
// separator.
func Flatten[T any](items []T, sep string) string {
	var values []string
	for _, item := range items {
		if s := fmt.Sprint(item); s != "" {
			values = append(values, s)
		}
	}
	return strings.Join(values, sep)
}

// Split splits text by the given separator into trimmed, non-empty items.
func Split(text, sep string) []string {
	var items []string
	for _, item := range strings.Split(text, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// First returns the first item matching the given condition. A nil condition
// matches every item.
func First[T any](items []T, condition func(T) bool) (T, bool) {
	for _, item := range items {
		if condition == nil || condition(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Where returns the items for which the given selector is true.
func Where[T any](items []T, selector func(T) bool) []T {
	var selected []T
	for _, item := range items {
		if selector(item) {
			selected = append(selected, item)
		}
	}
	return selected
}

// ForEach runs the given action on every item, in order.
func ForEach[T any](items []T, action func(T)) {
	for _, item := range items {
		action(item)
	}
}

// HasAny reports whether the sequence has at least one item.
func HasAny[T any](items []T) bool {
	return len(items) > 0
}

// Difference returns the items of the first sequence that do not appear in
// the second, preserving the order of the first.
func Difference[T comparable](first, second []T) []T {
	exclude := make(map[T]bool, len(second))
	for _, item := range second {
		exclude[item] = true
	}
	var values []T
	for _, item := range first {
		if !exclude[item] {
			values = append(values, item)
		}
	}
	return values
}

// UniqueExtend extends the first sequence with the items of the second that
// it does not already contain.
func UniqueExtend[T comparable](first, second []T) []T {
	return append(first, Difference(second, first)...)
}

// Unwrap expands an item and its nested children into a single list, deepest
// child first and the item itself last. The inner function returns the next
// child and whether one exists.
func Unwrap[T any](item T, inner func(T) (T, bool)) []T {
	var items []T
	if child, ok := inner(item); ok {
		items = Unwrap(child, inner)
	}
	return append(items, item)
}
