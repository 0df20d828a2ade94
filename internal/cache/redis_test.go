package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	opts, err := clientOptions("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, ioTimeout, opts.ReadTimeout)

	opts, err = clientOptions("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, dialTimeout, opts.DialTimeout)

	_, err = clientOptions("mysql://nope")
	assert.Error(t, err)
}

func TestInitRedis(t *testing.T) {
	t.Cleanup(func() { SetClient(nil) })

	InitRedis("")
	assert.Nil(t, GetClient())

	mr, err := miniredis.Run()
	require.NoError(t, err)
	InitRedis(mr.Addr())
	require.NotNil(t, GetClient())

	addr := mr.Addr()
	mr.Close()
	InitRedis(addr)
	assert.Nil(t, GetClient(), "an unreachable server disables caching")
}
