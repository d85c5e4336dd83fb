package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	SetLevel("debug")
	assert.True(t, IsDebug())

	SetLevel("error")
	assert.False(t, IsDebug())

	// Unknown names keep the current level.
	SetLevel("bogus")
	assert.False(t, IsDebug())

	SetLevel("DEBUG")
	assert.True(t, IsDebug())

	SetLevel("info")
}
