package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lshigami/studyloop/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientStartsWhileRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	mr.Close()

	rc, err := NewRedisClient(&config.Config{Redis: config.Redis{Host: host, Port: port}})
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })

	ctx := context.Background()
	_, err = rc.Get(ctx, "test:1:definition")
	require.Error(t, err)
	assert.False(t, IsMiss(err))

	// the same client is usable once Redis comes back
	require.NoError(t, mr.Restart())
	require.NoError(t, rc.Set(ctx, "test:1:definition", "{}", time.Minute))
	got, err := rc.Get(ctx, "test:1:definition")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	_, err = rc.Get(ctx, "test:2:definition")
	assert.True(t, IsMiss(err))
}
