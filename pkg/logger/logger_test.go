package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := New(level)
		require.NoError(t, err, level)
		assert.NotNil(t, log)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("chatty")
	require.Error(t, err)
}
