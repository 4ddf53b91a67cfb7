package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framedata/internal/registry"
)

func TestReplayCommand(t *testing.T) {
	host := newFakeHost()
	reg := registry.New(nil, nil)

	res, err := NewReplayCommand(host, reg, strings.NewReader("a b\nc")).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Events)
	assert.Len(t, host.TopWindows(), 3)
}

func TestReplayCommand_PartialFailure(t *testing.T) {
	host := newFakeHost()
	reg := registry.New(nil, nil)

	res, err := NewReplayCommand(host, reg, strings.NewReader("a fail b")).Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 1 events")
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Events)
}
