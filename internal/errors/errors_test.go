package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", New("boom"), KindUnknown},
		{"sentinel", ErrNotFound, KindNotFound},
		{"wrapped", Wrapf(ErrAlreadyExists, "value %q", "abc"), KindAlreadyExists},
		{"double wrapped", Wrap(Wrap(ErrConflictingFilters, "min 10 > max 1"), "translate"), KindConflictingFilters},
		{"stdlib wrapped", fmt.Errorf("outer: %w", ErrUntranslatable), KindUntranslatable},
		{"helper", InvalidInputf("bad %s", "value"), KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflicting_filters", KindConflictingFilters.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestWrapKeepsMessage(t *testing.T) {
	err := Wrapf(ErrNotFound, "string %q", "abc")
	assert.Equal(t, `string "abc": string not found`, err.Error())
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindInvalidInput, KindAlreadyExists, KindNotFound, KindConflictingFilters, KindUntranslatable} {
		assert.Equal(t, k, ParseKind(k.String()))
		assert.Equal(t, k, KindOf(k.Sentinel()))
	}
	assert.Equal(t, KindUnknown, ParseKind("unknown"))
	assert.Equal(t, KindUnknown, ParseKind("teapot"))
	assert.Nil(t, KindUnknown.Sentinel())
}
