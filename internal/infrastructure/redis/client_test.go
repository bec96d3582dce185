package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_AppliesURLAndTimeout(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr()+"/2", 750*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	opts := client.Options()
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 750*time.Millisecond, opts.DialTimeout)

	require.NoError(t, client.Set(context.Background(), "consolidation:A:2024-01-01", "{}", 0).Err())
	mr.Select(2)
	assert.True(t, mr.Exists("consolidation:A:2024-01-01"))
}

func TestNewClient_ZeroTimeoutKeepsDefaults(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.Equal(t, 5*time.Second, client.Options().DialTimeout)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url", time.Second)
	require.ErrorContains(t, err, "parse redis URL")
}

func TestNewClient_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	url := "redis://" + mr.Addr()
	mr.Close()

	_, err := NewClient(context.Background(), url, 200*time.Millisecond)
	require.ErrorContains(t, err, "ping redis")
}
