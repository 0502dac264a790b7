package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CarriesCodeAndMessage(t *testing.T) {
	err := New(ErrCodeEmptyInput, "nothing to extract")

	assert.Equal(t, ErrCodeEmptyInput, err.Code)
	assert.Equal(t, "[ING_002] nothing to extract", err.Error())
	assert.NotEmpty(t, err.Stack)
}

func TestError_IncludesDetail(t *testing.T) {
	err := New(ErrCodeIngestionNotFound, "ingestion record not found").WithDetail("ing-42")

	assert.Equal(t, "[ING_003] ingestion record not found: ing-42", err.Error())
}

func TestWithDetail_DoesNotMutateReceiver(t *testing.T) {
	base := New(ErrCodeInternal, "boom")
	detailed := base.WithDetail("request 7")

	assert.Empty(t, base.Detail)
	assert.Equal(t, "request 7", detailed.Detail)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeCacheError, "ignored"))
}

func TestWrap_PreservesCodeOnUnknown(t *testing.T) {
	inner := New(ErrCodeUnparseableContent, "no clauses")
	wrapped := Wrap(inner, ErrCodeUnknown, "extraction failed")

	assert.Equal(t, ErrCodeUnparseableContent, wrapped.Code)
	assert.Equal(t, inner, wrapped.Unwrap())
}

func TestWrap_ExplicitCodeWins(t *testing.T) {
	inner := New(ErrCodeNotFound, "missing")
	wrapped := Wrap(inner, ErrCodeCacheError, "cache read failed")

	assert.Equal(t, ErrCodeCacheError, wrapped.Code)
}

func TestIsCode_TraversesChain(t *testing.T) {
	inner := New(ErrCodeEmptyInput, "empty")
	outer := Wrap(fmt.Errorf("layer: %w", inner), ErrCodeInternal, "pipeline failed")

	assert.True(t, IsCode(outer, ErrCodeEmptyInput))
	assert.True(t, IsCode(outer, ErrCodeInternal))
	assert.False(t, IsCode(outer, ErrCodeCacheError))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"empty input", EmptyInput("empty"), true},
		{"missing content", MissingContent("missing"), true},
		{"wrapped input error", Wrap(EmptyInput("empty"), ErrCodeInternal, "outer"), true},
		{"unparseable is not input", Unparseable("nothing extracted"), false},
		{"plain error", fmt.Errorf("plain"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInputError(tt.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, ErrCodeStorageError, GetCode(New(ErrCodeStorageError, "s3 down")))
	assert.Equal(t, ErrCodeUnknown, GetCode(fmt.Errorf("plain")))
}

func TestFactories_AssignExpectedCodes(t *testing.T) {
	require.Equal(t, ErrCodeEmptyInput, EmptyInput("e").Code)
	require.Equal(t, ErrCodeMissingContent, MissingContent("m").Code)
	require.Equal(t, ErrCodeUnparseableContent, Unparseable("u").Code)
	require.Equal(t, ErrCodeInternal, Internal("i").Code)
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "ING", ModuleForCode(ErrCodeEmptyInput))
	assert.Equal(t, "EXT", ModuleForCode(ErrCodeStrategyTimeout))
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
}

func TestDefaultMessageForCode_UnknownCode(t *testing.T) {
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("NOPE_999")))
}
