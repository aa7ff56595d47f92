package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPalindrome(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"A man, a plan, a canal: Panama", true},
		{"hello", false},
		{"", true},
		{"racecar", true},
		{"RaceCar", true},
		{"No 'x' in Nixon", true},
		{"12321", true},
		{"123", false},
		{"!!!", true},
		{"ab", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPalindrome(tt.in))
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 3, WordCount("one  two   three"))
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 2, WordCount(" leading and"))
	// tabs and newlines do not separate words
	assert.Equal(t, 1, WordCount("one\ttwo\nthree"))
}

func TestLength(t *testing.T) {
	assert.Equal(t, 0, Length(""))
	assert.Equal(t, 5, Length("hello"))
	assert.Equal(t, 4, Length("café"))
	// U+1F600 is a surrogate pair in UTF-16
	assert.Equal(t, 2, Length("😀"))
}

func TestUniqueCharacters(t *testing.T) {
	assert.Equal(t, 0, UniqueCharacters(""))
	assert.Equal(t, 4, UniqueCharacters("hello"))
	assert.Equal(t, 2, UniqueCharacters("aA"))
	assert.Equal(t, 2, UniqueCharacters("a a"))
}

func TestCharacterFrequency(t *testing.T) {
	assert.Equal(t, map[string]int{"h": 1, "e": 1, "l": 2, "o": 1}, CharacterFrequency("hello"))
	assert.Equal(t, map[string]int{"é": 2, " ": 1}, CharacterFrequency("é é"))
	assert.Empty(t, CharacterFrequency(""))
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ContentHash(""))
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", ContentHash("hello"))
}

func TestAnalyze(t *testing.T) {
	p := Analyze("hello world")

	assert.Equal(t, 11, p.Length)
	assert.False(t, p.IsPalindrome)
	assert.Equal(t, 8, p.UniqueCharacters)
	assert.Equal(t, 2, p.WordCount)
	assert.Equal(t, ContentHash("hello world"), p.SHA256Hash)
	assert.Equal(t, 3, p.CharacterFrequencyMap["l"])
	assert.Equal(t, 1, p.CharacterFrequencyMap[" "])
}

func TestAnalyzeEmpty(t *testing.T) {
	p := Analyze("")

	assert.Equal(t, 0, p.Length)
	assert.Equal(t, 0, p.WordCount)
	assert.True(t, p.IsPalindrome)
	assert.Equal(t, 0, p.UniqueCharacters)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	inputs := []string{"", "hello", "A man, a plan, a canal: Panama", "one  two   three", "ünïcödé 😀", "\xff\xfe"}
	for _, in := range inputs {
		assert.Equal(t, Analyze(in), Analyze(in), "input %q", in)
		assert.Equal(t, UniqueCharacters(in), Analyze(in).UniqueCharacters, "input %q", in)
	}
}
