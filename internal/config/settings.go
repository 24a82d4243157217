package config

import (
	"fmt"
	"os"
)

// Environment variable names required before any graph or API activity.
const (
	EnvNeo4jURI      = "NEO4J_URI"
	EnvNeo4jUsername = "NEO4J_USERNAME"
	EnvNeo4jPassword = "NEO4J_PASSWORD"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvNeo4jDatabase = "NEO4J_DATABASE" // optional, defaults to "neo4j"
)

// Settings holds process-wide connection settings read from the environment.
type Settings struct {
	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string
	Neo4jDatabase string
	OpenAIKey     string
}

// LoadSettings reads connection settings from the environment.
// It fails fast with ErrMissingEnv naming every absent variable, so a
// misconfigured run halts before touching the graph or the embedding API.
func LoadSettings() (*Settings, error) {
	s := &Settings{
		Neo4jURI:      os.Getenv(EnvNeo4jURI),
		Neo4jUsername: os.Getenv(EnvNeo4jUsername),
		Neo4jPassword: os.Getenv(EnvNeo4jPassword),
		Neo4jDatabase: os.Getenv(EnvNeo4jDatabase),
		OpenAIKey:     os.Getenv(EnvOpenAIKey),
	}
	if s.Neo4jDatabase == "" {
		s.Neo4jDatabase = "neo4j"
	}

	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{EnvNeo4jURI, s.Neo4jURI},
		{EnvNeo4jUsername, s.Neo4jUsername},
		{EnvNeo4jPassword, s.Neo4jPassword},
		{EnvOpenAIKey, s.OpenAIKey},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingEnv, missing)
	}

	return s, nil
}
