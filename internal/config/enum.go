package config

import (
	"fmt"
	"sort"
	"strings"
)

// enumNormalizer maps loosely written user input onto a fixed set of enum values.
// Keys are compared lower-cased with surrounding space removed and '_' treated as '-'.
type enumNormalizer[T comparable] struct {
	values   map[string]T
	fallback T
	keys     []string
}

func newEnumNormalizer[T comparable](values map[string]T, fallback T) *enumNormalizer[T] {
	n := &enumNormalizer[T]{values: make(map[string]T, len(values)), fallback: fallback}
	for k, v := range values {
		key := normalizeKey(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

func (n *enumNormalizer[T]) normalize(raw string) T {
	if v, ok := n.values[normalizeKey(raw)]; ok {
		return v
	}
	return n.fallback
}

func (n *enumNormalizer[T]) parse(raw string) (T, error) {
	if v, ok := n.values[normalizeKey(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, n.keys)
}

func normalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}
