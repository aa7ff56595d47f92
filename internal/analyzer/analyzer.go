// Package analyzer computes the derived properties of a string.
//
// Every function is pure and total: it is defined for any input, including
// the empty string and invalid UTF-8, and returns the same output for the
// same input.
package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/rcliao/string-analyzer/internal/model"
)

// Analyze computes every property of s.
func Analyze(s string) model.Properties {
	hash := ContentHash(s)
	freq := CharacterFrequency(s)
	return model.Properties{
		Length:                Length(s),
		IsPalindrome:          IsPalindrome(s),
		UniqueCharacters:      len(freq),
		WordCount:             WordCount(s),
		SHA256Hash:            hash,
		CharacterFrequencyMap: freq,
	}
}

// Length counts UTF-16 code units, so characters outside the BMP count twice.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// IsPalindrome reports whether s reads the same backwards once lower-cased
// and stripped of everything outside [a-z0-9].
func IsPalindrome(s string) bool {
	norm := normalize(s)
	for i, j := 0, len(norm)-1; i < j; i, j = i+1, j-1 {
		if norm[i] != norm[j] {
			return false
		}
	}
	return true
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// normalize returns the ASCII-only form used for palindrome checks.
func normalize(s string) string {
	t := transform.Chain(
		cases.Lower(language.Und),
		runes.Remove(runes.Predicate(func(r rune) bool { return !isASCIIAlnum(r) })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if isASCIIAlnum(r) {
				return r
			}
			if r >= 'A' && r <= 'Z' {
				return r + ('a' - 'A')
			}
			return -1
		}, s)
	}
	return out
}

// UniqueCharacters counts distinct runes, case-sensitive.
func UniqueCharacters(s string) int {
	seen := make(map[rune]struct{}, utf8.RuneCountInString(s))
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// WordCount splits on the space character only; tabs and newlines are part
// of a word. Runs of spaces produce no empty words.
func WordCount(s string) int {
	n := 0
	for _, tok := range strings.Split(s, " ") {
		if tok != "" {
			n++
		}
	}
	return n
}

// ContentHash is the lowercase hex SHA-256 of the UTF-8 bytes of s.
func ContentHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CharacterFrequency maps each rune of s to its occurrence count.
func CharacterFrequency(s string) map[string]int {
	freq := make(map[string]int)
	for _, r := range s {
		freq[string(r)]++
	}
	return freq
}
