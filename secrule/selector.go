package secrule

import (
	"fmt"

	"secrulelang/secrule/vocab"
)

// SelectorType is the modifier written in front of an input name.
type SelectorType int

// Selector types.
const (
	_ SelectorType = iota
	SelectorTypeInclude
	SelectorTypeExclude
	SelectorTypeCount
)

var selectorTypes = vocab.New(
	vocab.Entry[SelectorType]{Symbol: SelectorTypeInclude, Name: ""},
	vocab.Entry[SelectorType]{Symbol: SelectorTypeExclude, Name: "!"},
	vocab.Entry[SelectorType]{Symbol: SelectorTypeCount, Name: "&"},
)

// Name is the modifier text. Include has none.
func (t SelectorType) Name() string {
	if n, ok := selectorTypes.Name(t); ok {
		return n
	}
	return fmt.Sprintf("SelectorType(%d)", int(t))
}

func (t SelectorType) String() string {
	switch t {
	case SelectorTypeInclude:
		return "include"
	case SelectorTypeExclude:
		return "exclude"
	case SelectorTypeCount:
		return "count"
	}
	return t.Name()
}

// SelectorTypeFromName looks up a selector type by its modifier text.
func SelectorTypeFromName(name string) (SelectorType, bool) {
	return selectorTypes.FromName(name)
}

// SelectorTypeVariants returns every selector type in declaration order.
func SelectorTypeVariants() []SelectorType {
	return selectorTypes.Variants()
}

// SelectorVariant tells the shapes of Selector apart.
type SelectorVariant int

// Selector variants. The zero value is SelectorNone.
const (
	SelectorNone SelectorVariant = iota
	SelectorInclude
	SelectorExclude
	SelectorCount
	SelectorCountAll
)

func (v SelectorVariant) String() string {
	switch v {
	case SelectorNone:
		return "none"
	case SelectorInclude:
		return "include"
	case SelectorExclude:
		return "exclude"
	case SelectorCount:
		return "count"
	case SelectorCountAll:
		return "count_all"
	}
	return fmt.Sprintf("SelectorVariant(%d)", int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (v SelectorVariant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Selector narrows, excludes or counts the members of an input collection.
// Include, Exclude and Count always carry a non-empty key; None and CountAll never do.
type Selector struct {
	variant SelectorVariant
	key     string
}

// IncludeSelector selects the members named by key. It panics if key is empty.
func IncludeSelector(key string) Selector {
	return keyed(SelectorInclude, key)
}

// ExcludeSelector removes the members named by key. It panics if key is empty.
func ExcludeSelector(key string) Selector {
	return keyed(SelectorExclude, key)
}

// CountSelector counts the members named by key. It panics if key is empty.
func CountSelector(key string) Selector {
	return keyed(SelectorCount, key)
}

// CountAllSelector counts every member of the collection.
func CountAllSelector() Selector {
	return Selector{variant: SelectorCountAll}
}

func keyed(v SelectorVariant, key string) Selector {
	if key == "" {
		panic(fmt.Sprintf("secrule: %s selector requires a key", v))
	}
	return Selector{variant: v, key: key}
}

// SelectorFromParts resolves an optional modifier and an optional key into a selector.
// text is the full input text, used in errors.
func SelectorFromParts(modifier *string, key *string, text string) (Selector, error) {
	if key != nil && *key == "" {
		return Selector{}, &ParseError{Err: ErrInvalidSelector, Text: text}
	}

	if modifier == nil {
		if key == nil {
			return Selector{}, nil
		}
		return IncludeSelector(*key), nil
	}

	t, ok := SelectorTypeFromName(*modifier)
	switch {
	case ok && t == SelectorTypeExclude && key != nil:
		return ExcludeSelector(*key), nil
	case ok && t == SelectorTypeExclude:
		return Selector{}, &ParseError{Err: ErrInvalidSelector, Text: text}
	case ok && t == SelectorTypeCount && key != nil:
		return CountSelector(*key), nil
	case ok && t == SelectorTypeCount:
		return CountAllSelector(), nil
	}

	// Unknown modifiers, and an explicitly written include modifier, which has no spelling of its own.
	return Selector{}, &ParseError{Err: ErrInvalidModifier, Text: text}
}

// Variant reports the selector's shape.
func (s Selector) Variant() SelectorVariant {
	return s.variant
}

// Arg is the selector key, if any.
func (s Selector) Arg() (string, bool) {
	return s.key, s.key != ""
}

// SelectorType is the modifier kind of the selector. Count and CountAll both report SelectorTypeCount. None has no type.
func (s Selector) SelectorType() (SelectorType, bool) {
	switch s.variant {
	case SelectorInclude:
		return SelectorTypeInclude, true
	case SelectorExclude:
		return SelectorTypeExclude, true
	case SelectorCount, SelectorCountAll:
		return SelectorTypeCount, true
	}
	return 0, false
}

// Prefix is the modifier text written before the input name.
func (s Selector) Prefix() string {
	if t, ok := s.SelectorType(); ok {
		return t.Name()
	}
	return ""
}

// Equal reports whether two selectors are the same. It lets go-cmp compare selectors.
func (s Selector) Equal(o Selector) bool {
	return s == o
}

func (s Selector) String() string {
	if s.key == "" {
		return s.variant.String()
	}
	return fmt.Sprintf("%s(%s)", s.variant, s.key)
}
