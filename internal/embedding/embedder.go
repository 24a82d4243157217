package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
)

const (
	// EmbeddingModel is the OpenAI model used for generating embeddings.
	EmbeddingModel = "text-embedding-3-small"

	// EmbeddingDimension is the vector dimension for text-embedding-3-small.
	// This matches graph.VectorDimension (1536).
	EmbeddingDimension = 1536

	// DefaultBatchSize balances requests-per-minute vs tokens-per-minute
	// rate limits. OpenAI supports up to 2048 texts per batch, but smaller
	// batches reduce TPM pressure.
	DefaultBatchSize = 500
)

// Embedder generates embeddings for chunk texts. It batches requests and
// retries rate-limited calls with exponential backoff; authentication
// failures are permanent and surface as ErrAuth.
type Embedder struct {
	client    *Client
	batchSize int
}

// NewEmbedder creates an Embedder with the given client and optional batch
// size. If batchSize is 0, DefaultBatchSize is used.
func NewEmbedder(client *Client, batchSize int) *Embedder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Embedder{
		client:    client,
		batchSize: batchSize,
	}
}

// GenerateEmbeddings generates one vector per input text, preserving order.
func (e *Embedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	var allEmbeddings [][]float32

	for i := 0; i < len(texts); i += e.batchSize {
		end := min(i+e.batchSize, len(texts))
		batch := texts[i:end]

		embeddings, err := e.embedBatchWithRetry(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", i, end, err)
		}
		allEmbeddings = append(allEmbeddings, embeddings...)
	}

	return allEmbeddings, nil
}

// embedBatchWithRetry generates embeddings for a single batch.
// Rate limit errors (HTTP 429) retry with exponential backoff; auth errors
// (HTTP 401/403) and everything else fail immediately.
func (e *Embedder) embedBatchWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	var embeddings [][]float32

	operation := func() error {
		resp, err := e.client.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{
				OfArrayOfStrings: texts,
			},
			Model: EmbeddingModel,
		})
		if err != nil {
			switch classify(err) {
			case errRetryable:
				return err // retried with backoff
			case errAuth:
				return backoff.Permanent(fmt.Errorf("%w: %v", ErrAuth, err))
			default:
				return backoff.Permanent(err)
			}
		}

		// The API returns float64, the graph stores float32.
		embeddings = make([][]float32, len(resp.Data))
		for i, data := range resp.Data {
			embeddings[i] = toFloat32(data.Embedding)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	if err != nil && classify(err) == errRetryable {
		// Backoff gave up on a still-retryable error: the rate limit held
		// for the whole window.
		err = fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return embeddings, err
}

type errClass int

const (
	errPermanent errClass = iota
	errRetryable
	errAuth
)

// classify maps an OpenAI API error to its retry class.
func classify(err error) errClass {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return errPermanent
	}
	switch apiErr.StatusCode {
	case 429:
		return errRetryable
	case 401, 403:
		return errAuth
	default:
		return errPermanent
	}
}

// toFloat32 converts []float64 to []float32.
func toFloat32(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}
