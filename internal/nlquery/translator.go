// Package nlquery translates free-text queries into FilterSets.
//
// Translation is a single pass over an ordered list of detectors. Each
// detector looks for one phrasing in the lower-cased query and, when it
// finds it, returns a partial FilterSet. Partials are merged in order, so
// for a field set by several detectors the last one wins:
//
//	palindrome, non_palindrome, word_count, length, character, vowel,
//	empty, multi_word
//
// "non-palindrome" therefore beats "palindrome", "vowel" beats an explicit
// "letter x", "empty" replaces a min_length from "at least N", and "spaces"
// replaces an exact word count with word_count > 1.
package nlquery

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/model"
)

// Interpretation is the result of a successful translation.
type Interpretation struct {
	Original      string          `json:"original"`
	ParsedFilters model.FilterSet `json:"parsed_filters"`
	// Rules lists the detectors that fired, in order.
	Rules []string `json:"-"`
}

type detector struct {
	name   string
	detect func(q string) (model.FilterSet, bool)
}

var detectors = []detector{
	{"palindrome", detectPalindrome},
	{"non_palindrome", detectNonPalindrome},
	{"word_count", detectWordCount},
	{"length", detectLength},
	{"character", detectCharacter},
	{"vowel", detectVowel},
	{"empty", detectEmpty},
	{"multi_word", detectMultiWord},
}

// Translate converts query into a FilterSet. It fails with
// ErrUntranslatable when no detector fires and with ErrConflictingFilters
// when the resulting min_length exceeds max_length.
func Translate(query string) (*Interpretation, error) {
	q := strings.ToLower(query)

	var fs model.FilterSet
	var fired []string
	for _, d := range detectors {
		if patch, ok := d.detect(q); ok {
			fs.Merge(patch)
			fired = append(fired, d.name)
		}
	}

	if len(fired) == 0 {
		return nil, errors.Wrapf(errors.ErrUntranslatable, "query %q", query)
	}
	if err := fs.CheckBounds(); err != nil {
		return nil, errors.Wrapf(err, "query %q", query)
	}

	return &Interpretation{
		Original:      query,
		ParsedFilters: fs,
		Rules:         fired,
	}, nil
}

func containsAny(q string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

func detectPalindrome(q string) (model.FilterSet, bool) {
	if !containsAny(q, "palindrome", "palindromic") {
		return model.FilterSet{}, false
	}
	return model.FilterSet{IsPalindrome: model.Bool(true)}, true
}

func detectNonPalindrome(q string) (model.FilterSet, bool) {
	if !containsAny(q, "non-palindrome", "not palindrome") {
		return model.FilterSet{}, false
	}
	return model.FilterSet{IsPalindrome: model.Bool(false)}, true
}

var wordCountRe = regexp.MustCompile(`(\d+)\s*word`)

func detectWordCount(q string) (model.FilterSet, bool) {
	switch {
	case containsAny(q, "single word", "one word"):
		return model.FilterSet{WordCount: model.Eq(1)}, true
	case containsAny(q, "double word", "two words"):
		return model.FilterSet{WordCount: model.Eq(2)}, true
	}
	m := wordCountRe.FindStringSubmatch(q)
	if m == nil {
		return model.FilterSet{}, false
	}
	return model.FilterSet{WordCount: model.Eq(parseNumeral(m[1]))}, true
}

var (
	numeralRe        = regexp.MustCompile(`\d+`)
	leadingNumeralRe = regexp.MustCompile(`^\s*(\d+)`)
)

// detectLength honors at most one lower-bound phrasing ("longer than" before
// "at least") and one upper-bound phrasing ("shorter than" before "at
// most"). The bound is the numeral right after the phrase, falling back to
// the first numeral in the query.
func detectLength(q string) (model.FilterSet, bool) {
	m := numeralRe.FindString(q)
	if m == "" {
		return model.FilterSet{}, false
	}
	first := parseNumeral(m)

	bound := func(phrase string) (int, bool) {
		idx := strings.Index(q, phrase)
		if idx < 0 {
			return 0, false
		}
		if m := leadingNumeralRe.FindStringSubmatch(q[idx+len(phrase):]); m != nil {
			return parseNumeral(m[1]), true
		}
		return first, true
	}

	var fs model.FilterSet
	if n, ok := bound("longer than"); ok {
		if n < math.MaxInt {
			n++
		}
		fs.MinLength = model.Int(n)
	} else if n, ok := bound("at least"); ok {
		fs.MinLength = model.Int(n)
	}
	if n, ok := bound("shorter than"); ok {
		fs.MaxLength = model.Int(n - 1)
	} else if n, ok := bound("at most"); ok {
		fs.MaxLength = model.Int(n)
	}
	return fs, !fs.IsEmpty()
}

// parseNumeral reads a run of digits, saturating at math.MaxInt. No string
// is that long, so a huge lower bound still matches nothing.
func parseNumeral(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}

var characterRe = regexp.MustCompile(`\b(?:letter|character)\s+['"]?([a-z0-9])\b`)

func detectCharacter(q string) (model.FilterSet, bool) {
	m := characterRe.FindStringSubmatch(q)
	if m == nil {
		return model.FilterSet{}, false
	}
	return model.FilterSet{ContainsCharacter: model.String(m[1])}, true
}

func detectVowel(q string) (model.FilterSet, bool) {
	if !strings.Contains(q, "vowel") {
		return model.FilterSet{}, false
	}
	return model.FilterSet{ContainsCharacter: model.String("a")}, true
}

func detectEmpty(q string) (model.FilterSet, bool) {
	if !containsAny(q, "empty", "blank") {
		return model.FilterSet{}, false
	}
	return model.FilterSet{MinLength: model.Int(0)}, true
}

func detectMultiWord(q string) (model.FilterSet, bool) {
	if !containsAny(q, "spaces", "multi-word") {
		return model.FilterSet{}, false
	}
	return model.FilterSet{WordCount: model.Gt(1)}, true
}
