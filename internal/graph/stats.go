package graph

import (
	"context"
	"fmt"
)

// CollectStats gathers node, relationship, label, and splitter counts.
func (s *Store) CollectStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Labels:    map[string]int64{},
		RelTypes:  map[string]int64{},
		Splitters: map[string]int64{},
	}

	records, err := s.read(ctx, `MATCH (n) RETURN count(n) AS count`, nil)
	if err != nil {
		return nil, fmt.Errorf("count nodes: %w", err)
	}
	if len(records) > 0 {
		stats.Nodes = int64Value(records[0].AsMap()["count"])
	}

	records, err = s.read(ctx, `MATCH ()-[r]->() RETURN count(r) AS count`, nil)
	if err != nil {
		return nil, fmt.Errorf("count relationships: %w", err)
	}
	if len(records) > 0 {
		stats.Relationships = int64Value(records[0].AsMap()["count"])
	}

	records, err = s.read(ctx, `
		MATCH (n)
		UNWIND labels(n) AS label
		RETURN label, count(*) AS count
		ORDER BY count DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("count labels: %w", err)
	}
	for _, r := range records {
		m := r.AsMap()
		stats.Labels[m["label"].(string)] = int64Value(m["count"])
	}

	records, err = s.read(ctx, `
		MATCH ()-[r]->()
		RETURN type(r) AS type, count(*) AS count
		ORDER BY count DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("count relationship types: %w", err)
	}
	for _, r := range records {
		m := r.AsMap()
		stats.RelTypes[m["type"].(string)] = int64Value(m["count"])
	}

	records, err = s.read(ctx, `
		MATCH (c:TextChunk)
		RETURN c.splitter AS splitter, count(*) AS count
		ORDER BY count DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("count splitters: %w", err)
	}
	for _, r := range records {
		m := r.AsMap()
		if name, ok := m["splitter"].(string); ok {
			stats.Splitters[name] = int64Value(m["count"])
		}
	}

	return stats, nil
}

func int64Value(v any) int64 {
	n, _ := v.(int64)
	return n
}
