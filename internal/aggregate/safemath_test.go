package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 2.0, SafeDivide(10, 5))
	assert.Equal(t, 0.0, SafeDivide(10, 0))
	assert.Equal(t, 0.0, SafeDivide(0, 0))
	assert.Equal(t, -2.5, SafeDivide(-5, 2))
}

func TestSafePercent(t *testing.T) {
	assert.Equal(t, 25.0, SafePercent(1, 4))
	assert.Equal(t, 0.0, SafePercent(10, 0))
	assert.Equal(t, 100.0, SafePercent(3, 3))
}
