package resource

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerSlots(t *testing.T) {
	ctx := context.Background()
	c := NewController(Config{MaxSearchWorkers: 2})

	require.NoError(t, c.AcquireWorker(ctx))
	require.NoError(t, c.AcquireWorker(ctx))

	// Third acquire must block until a slot frees up.
	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireWorker(blocked))

	c.ReleaseWorker()
	require.NoError(t, c.AcquireWorker(ctx))
}

func TestDefaultWorkerBound(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(1), c.MaxSearchWorkers())
}

func TestThrottleReader_NoLimitPassesThrough(t *testing.T) {
	c := NewController(Config{})
	r := strings.NewReader("data")
	assert.Equal(t, io.Reader(r), c.ThrottleReader(context.Background(), r))
}

func TestThrottleReader_ReadsEverything(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	r := c.ThrottleReader(context.Background(), strings.NewReader("hello world"))

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}
