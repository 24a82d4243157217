package embedding

import (
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	// ErrAuth marks an authentication failure against the embedding API.
	// It is fatal for the whole batch, never retried.
	ErrAuth = errors.New("embedding API authentication failed")

	// ErrRateLimited marks a rate-limit failure that survived all retries.
	ErrRateLimited = errors.New("embedding API rate limit exceeded")
)

// Client wraps the OpenAI client for embedding generation.
type Client struct {
	client *openai.Client
}

// NewClient creates an OpenAI client with the given API key.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAuth
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{client: &client}, nil
}

// Client returns the underlying OpenAI client.
func (c *Client) Client() *openai.Client {
	return c.client
}
