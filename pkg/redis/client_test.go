package redis

import (
	"testing"

	"github.com/harvestlink-app/harvestlink-backend/pkg/config"
)

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error with no url or address")
	}
}

func TestOptionsFromConfigAddress(t *testing.T) {
	t.Parallel()

	opts, err := optionsFromConfig(config.RedisConfig{
		Address:  "localhost:6379",
		Password: "secret",
		DB:       3,
		PoolSize: 7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 3 || opts.PoolSize != 7 {
		t.Fatalf("options not applied: %+v", opts)
	}
}

func TestOptionsFromConfigURLWins(t *testing.T) {
	t.Parallel()

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:     "redis://:pw@example.com:6380/2",
		Address: "ignored:1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "example.com:6380" || opts.DB != 2 {
		t.Fatalf("url not parsed: %+v", opts)
	}
}

func TestSnapshotKeyNamespacing(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if got := c.SnapshotKey("user-1"); got != "hl:cart:user-1" {
		t.Fatalf("unexpected key %q", got)
	}
}
