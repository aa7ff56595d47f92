// Package filter evaluates FilterSets against stored string records.
//
// Predicates are independent and AND-combined: a record matches when every
// populated predicate holds. An unset predicate imposes no constraint.
package filter

import (
	"context"

	"github.com/rcliao/string-analyzer/internal/model"
)

// Lister is the part of a store Select needs.
type Lister interface {
	All(ctx context.Context) ([]model.StringRecord, error)
}

// Selection holds the values of the records that matched.
type Selection struct {
	Data  []string `json:"data"`
	Count int      `json:"count"`
}

// Matches reports whether rec satisfies every predicate in fs.
func Matches(fs model.FilterSet, rec model.StringRecord) bool {
	p := rec.Properties

	if fs.IsPalindrome != nil && p.IsPalindrome != *fs.IsPalindrome {
		return false
	}
	if fs.WordCount != nil && !fs.WordCount.Holds(p.WordCount) {
		return false
	}
	if fs.ContainsCharacter != nil {
		if _, ok := p.CharacterFrequencyMap[*fs.ContainsCharacter]; !ok {
			return false
		}
	}
	if fs.MinLength != nil && p.Length < *fs.MinLength {
		return false
	}
	if fs.MaxLength != nil && p.Length > *fs.MaxLength {
		return false
	}
	return true
}

// Select returns the values of every record in l that matches fs, in the
// store's iteration order.
func Select(ctx context.Context, l Lister, fs model.FilterSet) (Selection, error) {
	records, err := l.All(ctx)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{Data: make([]string, 0, len(records))}
	for _, rec := range records {
		if Matches(fs, rec) {
			sel.Data = append(sel.Data, rec.Value)
		}
	}
	sel.Count = len(sel.Data)
	return sel, nil
}
