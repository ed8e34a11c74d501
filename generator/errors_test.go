package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorUnwrapsToSentinel(t *testing.T) {
	err := NewConfigError("Package", "", "required")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "Package")
}

func TestEmitErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewEmitError("out/generated.go", cause)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsEmitError(err))
	assert.Contains(t, err.Error(), "out/generated.go")
}

func TestIsConfigErrorFalseForUnrelatedError(t *testing.T) {
	assert.False(t, IsConfigError(errors.New("boom")))
	assert.False(t, IsEmitError(errors.New("boom")))
}
