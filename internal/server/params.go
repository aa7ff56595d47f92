package server

import (
	"net/url"
	"strconv"

	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/model"
)

const (
	paramIsPalindrome      = "is_palindrome"
	paramMinLength         = "min_length"
	paramMaxLength         = "max_length"
	paramWordCount         = "word_count"
	paramContainsCharacter = "contains_character"
)

var allowedParams = map[string]bool{
	paramIsPalindrome:      true,
	paramMinLength:         true,
	paramMaxLength:         true,
	paramWordCount:         true,
	paramContainsCharacter: true,
}

// parseFilterSet converts query parameters into a FilterSet. Unknown
// parameters, repeated parameters and values of the wrong type are rejected.
// Relational checks are left to FilterSet.Validate.
func parseFilterSet(q url.Values) (model.FilterSet, error) {
	var fs model.FilterSet

	for key, vals := range q {
		if !allowedParams[key] {
			return fs, errors.InvalidInputf("unknown query parameter %q", key)
		}
		if len(vals) != 1 {
			return fs, errors.InvalidInputf("query parameter %q given %d times", key, len(vals))
		}
	}

	if v, ok := single(q, paramIsPalindrome); ok {
		switch v {
		case "true":
			fs.IsPalindrome = model.Bool(true)
		case "false":
			fs.IsPalindrome = model.Bool(false)
		default:
			return fs, errors.InvalidInputf("%s must be true or false, got %q", paramIsPalindrome, v)
		}
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{paramMinLength, &fs.MinLength},
		{paramMaxLength, &fs.MaxLength},
	} {
		if v, ok := single(q, p.name); ok {
			n, err := nonNegativeInt(p.name, v)
			if err != nil {
				return fs, err
			}
			*p.dst = model.Int(n)
		}
	}

	if v, ok := single(q, paramWordCount); ok {
		n, err := nonNegativeInt(paramWordCount, v)
		if err != nil {
			return fs, err
		}
		fs.WordCount = model.Eq(n)
	}

	if v, ok := single(q, paramContainsCharacter); ok {
		fs.ContainsCharacter = model.String(v)
	}

	return fs, nil
}

func single(q url.Values, key string) (string, bool) {
	vals, ok := q[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func nonNegativeInt(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.InvalidInputf("%s must be a non-negative integer, got %q", name, v)
	}
	return n, nil
}
