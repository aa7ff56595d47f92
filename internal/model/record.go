// Package model defines the core string-analysis data types.
package model

import (
	"maps"
	"time"
)

// Properties are the values derived from a stored string.
type Properties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// StringRecord represents a stored string and its analysis.
type StringRecord struct {
	Value      string     `json:"value"`
	ID         string     `json:"id"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Clone returns a copy that shares no mutable state with r.
func (r StringRecord) Clone() StringRecord {
	r.Properties.CharacterFrequencyMap = maps.Clone(r.Properties.CharacterFrequencyMap)
	return r
}
