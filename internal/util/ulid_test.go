package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	first := NewULID()
	second := NewULID()

	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
}
