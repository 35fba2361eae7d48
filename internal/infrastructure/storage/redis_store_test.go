//go:build integration

package storage

import (
	"context"
	"os"
	"testing"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("COPYWRITER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("COPYWRITER_TEST_REDIS_ADDR not set")
	}
	store, err := OpenRedis(context.Background(), addr, 15)
	if err != nil {
		t.Fatalf("OpenRedis() error = %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}
