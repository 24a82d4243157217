// Package graph persists documents, chunks, and their links in Neo4j, and
// carries the operational surface over the resulting graph: index
// management, statistics, cleanup, and vector similarity search.
package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dtorres/chunkgraph/internal/config"
)

// Store wraps the Neo4j driver with connection management. The driver is
// opened once at startup and shared for the whole run.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewStore connects to Neo4j using the given settings and verifies
// connectivity with bounded retry. An unreachable server fails fast with
// ErrUnreachable.
func NewStore(ctx context.Context, settings *config.Settings) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(
		settings.Neo4jURI,
		neo4j.BasicAuth(settings.Neo4jUsername, settings.Neo4jPassword, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	store := &Store{
		driver:   driver,
		database: settings.Neo4jDatabase,
	}

	if err := store.verifyWithRetry(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return store, nil
}

// verifyWithRetry checks connectivity with exponential backoff.
// Initial interval 500ms, max interval 10s, max elapsed 30s.
func (s *Store) verifyWithRetry(ctx context.Context) error {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 500 * time.Millisecond
	exponentialBackoff.MaxInterval = 10 * time.Second
	exponentialBackoff.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		return s.driver.VerifyConnectivity(ctx)
	}

	return backoff.Retry(operation, backoff.WithContext(exponentialBackoff, ctx))
}

// Ping performs a single connectivity verification.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return nil
}

// Close closes the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// session opens a session against the configured database.
func (s *Store) session(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
}

// write runs a single write query inside a managed transaction.
func (s *Store) write(ctx context.Context, query string, params map[string]any) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	return err
}

// readWrite runs a write query and collects its returned records.
func (s *Store) readWrite(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	rows, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]map[string]any, len(records))
		for i, r := range records {
			out[i] = r.AsMap()
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return rows.([]map[string]any), nil
}

// writeAutocommit runs a query in an implicit transaction. Schema commands
// (index DDL) cannot run inside managed transactions.
func (s *Store) writeAutocommit(ctx context.Context, query string, params map[string]any) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

// read runs a single read query and collects all records.
func (s *Store) read(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return records.([]*neo4j.Record), nil
}
