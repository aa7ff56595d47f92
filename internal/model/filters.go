package model

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/rcliao/string-analyzer/internal/errors"
)

// Op is a comparison operator.
type Op string

const (
	OpEq Op = "eq"
	OpGt Op = "gt"
)

// Comparison is a constraint on an integer property.
// An eq comparison encodes as a bare JSON number; others as {"op","value"}.
type Comparison struct {
	Op    Op  `json:"op"`
	Value int `json:"value"`
}

// Eq returns an equality comparison.
func Eq(n int) *Comparison { return &Comparison{Op: OpEq, Value: n} }

// Gt returns a strictly-greater-than comparison.
func Gt(n int) *Comparison { return &Comparison{Op: OpGt, Value: n} }

// Holds reports whether n satisfies the comparison.
func (c Comparison) Holds(n int) bool {
	switch c.Op {
	case OpEq:
		return n == c.Value
	case OpGt:
		return n > c.Value
	default:
		return false
	}
}

func (c Comparison) MarshalJSON() ([]byte, error) {
	if c.Op == OpEq {
		return json.Marshal(c.Value)
	}
	type plain Comparison
	return json.Marshal(plain(c))
}

func (c *Comparison) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*c = Comparison{Op: OpEq, Value: n}
		return nil
	}
	type plain Comparison
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Comparison(p)
	return nil
}

// FilterSet is a set of optional predicates. A nil field imposes no
// constraint; populated fields are AND-combined.
type FilterSet struct {
	IsPalindrome      *bool       `json:"is_palindrome,omitempty"`
	MinLength         *int        `json:"min_length,omitempty"`
	MaxLength         *int        `json:"max_length,omitempty"`
	WordCount         *Comparison `json:"word_count,omitempty"`
	ContainsCharacter *string     `json:"contains_character,omitempty"`
}

// IsEmpty returns true if no predicate is set.
func (f FilterSet) IsEmpty() bool {
	return f.IsPalindrome == nil && f.MinLength == nil && f.MaxLength == nil &&
		f.WordCount == nil && f.ContainsCharacter == nil
}

// Merge overwrites the fields of f with every field set in patch.
func (f *FilterSet) Merge(patch FilterSet) {
	if patch.IsPalindrome != nil {
		f.IsPalindrome = patch.IsPalindrome
	}
	if patch.MinLength != nil {
		f.MinLength = patch.MinLength
	}
	if patch.MaxLength != nil {
		f.MaxLength = patch.MaxLength
	}
	if patch.WordCount != nil {
		f.WordCount = patch.WordCount
	}
	if patch.ContainsCharacter != nil {
		f.ContainsCharacter = patch.ContainsCharacter
	}
}

// CheckBounds fails with ErrConflictingFilters when both length bounds are
// set and min_length exceeds max_length.
func (f FilterSet) CheckBounds() error {
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return errors.Wrapf(errors.ErrConflictingFilters,
			"min_length %d is greater than max_length %d", *f.MinLength, *f.MaxLength)
	}
	return nil
}

// Validate checks a structured FilterSet before evaluation.
func (f FilterSet) Validate() error {
	if f.MinLength != nil && *f.MinLength < 0 {
		return errors.InvalidInputf("min_length must be non-negative, got %d", *f.MinLength)
	}
	if f.MaxLength != nil && *f.MaxLength < 0 {
		return errors.InvalidInputf("max_length must be non-negative, got %d", *f.MaxLength)
	}
	if f.WordCount != nil {
		if f.WordCount.Op != OpEq && f.WordCount.Op != OpGt {
			return errors.InvalidInputf("unknown word_count operator %q", f.WordCount.Op)
		}
		if f.WordCount.Value < 0 {
			return errors.InvalidInputf("word_count must be non-negative, got %d", f.WordCount.Value)
		}
	}
	if f.ContainsCharacter != nil && utf8.RuneCountInString(*f.ContainsCharacter) != 1 {
		return errors.InvalidInputf("contains_character must be a single character, got %q", *f.ContainsCharacter)
	}
	return f.CheckBounds()
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// String returns a pointer to s.
func String(s string) *string { return &s }
