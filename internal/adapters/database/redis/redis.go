package redis

import (
	"github.com/redis/go-redis/v9"

	"github.com/Badsnus/qr-studio/internal/adapters/database/redis/artifacts"
)

type Client struct {
	Artifacts *artifacts.Storage
}

// New wraps an already connected client.
func New(client *redis.Client) *Client {
	return &Client{
		Artifacts: artifacts.NewStorage(client),
	}
}
