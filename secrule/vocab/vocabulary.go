// Package vocab provides closed, compile-time vocabularies: sets of symbols that each have exactly one canonical spelling.
package vocab

import "fmt"

// Entry pairs a symbol with its canonical spelling.
type Entry[T comparable] struct {
	Symbol T
	Name   string
}

// Vocabulary is a read-only bidirectional mapping between symbols and their spellings.
// It is safe for concurrent use.
type Vocabulary[T comparable] struct {
	order    []T
	names    map[T]string
	fromName map[string]T
}

// New builds a Vocabulary from entries in declaration order. It panics on a duplicate symbol or spelling,
// since vocabularies are package-level data and such a duplicate is a programming error.
func New[T comparable](entries ...Entry[T]) *Vocabulary[T] {
	v := &Vocabulary[T]{
		order:    make([]T, 0, len(entries)),
		names:    make(map[T]string, len(entries)),
		fromName: make(map[string]T, len(entries)),
	}

	for _, e := range entries {
		if _, ok := v.names[e.Symbol]; ok {
			panic(fmt.Sprintf("vocab: duplicate symbol %v", e.Symbol))
		}
		if _, ok := v.fromName[e.Name]; ok {
			panic(fmt.Sprintf("vocab: duplicate name %q", e.Name))
		}
		v.order = append(v.order, e.Symbol)
		v.names[e.Symbol] = e.Name
		v.fromName[e.Name] = e.Symbol
	}

	return v
}

// Name returns the canonical spelling of a symbol, and false if the symbol is not part of the vocabulary.
func (v *Vocabulary[T]) Name(s T) (string, bool) {
	n, ok := v.names[s]
	return n, ok
}

// FromName looks up a symbol by its exact, case-sensitive spelling.
func (v *Vocabulary[T]) FromName(name string) (s T, ok bool) {
	s, ok = v.fromName[name]
	return
}

// Variants returns all symbols in declaration order.
func (v *Vocabulary[T]) Variants() []T {
	out := make([]T, len(v.order))
	copy(out, v.order)
	return out
}

// Names returns all spellings in declaration order.
func (v *Vocabulary[T]) Names() []string {
	out := make([]string, len(v.order))
	for i, s := range v.order {
		out[i] = v.names[s]
	}
	return out
}

// Len is the number of symbols.
func (v *Vocabulary[T]) Len() int {
	return len(v.order)
}
