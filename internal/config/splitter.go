package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Strategy identifies one of the supported splitting strategies.
type Strategy string

const (
	StrategyFixedSize Strategy = "fixed-size"
	StrategyCharacter Strategy = "character"
	StrategySentence  Strategy = "sentence"
	StrategyToken     Strategy = "token"
	StrategyMarkdown  Strategy = "markdown"
)

// StrategyOrder is the fixed processing order for a batch run.
var StrategyOrder = []Strategy{
	StrategyFixedSize,
	StrategyCharacter,
	StrategySentence,
	StrategyToken,
	StrategyMarkdown,
}

// SplitterParams carries strategy-specific tuning parameters. Fields not
// relevant to the configured strategy are ignored by validation.
type SplitterParams struct {
	Strategy Strategy `yaml:"strategy"`

	// fixed-size and character
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`

	// character
	Separator string `yaml:"separator"`

	// sentence
	SentencesPerChunk int `yaml:"sentences_per_chunk"`

	// token
	TokenLimit   int    `yaml:"token_limit"`
	TokenOverlap int    `yaml:"token_overlap"`
	Encoding     string `yaml:"encoding"`

	// markdown
	MinHeaderDepth int `yaml:"min_header_depth"`
	MaxHeaderDepth int `yaml:"max_header_depth"`
}

// DocumentRef names a document to process: either a file path or inline text.
type DocumentRef struct {
	Name string `yaml:"name"`
	Path string `yaml:"path,omitempty"`
	Text string `yaml:"text,omitempty"`
}

// Load reads the document content from disk when Path is set, otherwise
// returns the inline text.
func (d DocumentRef) Load() (string, error) {
	if d.Path == "" {
		return d.Text, nil
	}
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return "", fmt.Errorf("read document %q: %w", d.Name, err)
	}
	return string(data), nil
}

// SplitterConfig is one YAML configuration file: a strategy with its
// parameters and the documents it applies to.
type SplitterConfig struct {
	Name      string         `yaml:"-"` // file stem, set by the loader
	Splitter  SplitterParams `yaml:"splitter"`
	Documents []DocumentRef  `yaml:"documents"`
}

// LoadSplitterConfig parses and validates a single configuration file.
func LoadSplitterConfig(path string) (*SplitterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg SplitterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Name = strategyStem(path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDir loads every *.yaml config in dir and returns them in the fixed
// strategy order. Two configs for the same strategy keep their relative
// filename order.
func LoadDir(dir string) ([]*SplitterConfig, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no *.yaml configs found in %s", dir)
	}
	sort.Strings(matches)

	configs := make([]*SplitterConfig, 0, len(matches))
	for _, m := range matches {
		cfg, err := LoadSplitterConfig(m)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	sort.SliceStable(configs, func(i, j int) bool {
		return strategyRank(configs[i].Splitter.Strategy) < strategyRank(configs[j].Splitter.Strategy)
	})
	return configs, nil
}

// Validate checks the parameters required by the configured strategy.
func (c *SplitterConfig) Validate() error {
	p := c.Splitter
	switch p.Strategy {
	case StrategyFixedSize:
		if p.ChunkSize <= 0 {
			return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidParam, p.ChunkSize)
		}
		if p.ChunkOverlap < 0 {
			return fmt.Errorf("%w: chunk_overlap must not be negative, got %d", ErrInvalidParam, p.ChunkOverlap)
		}
		if p.ChunkOverlap >= p.ChunkSize {
			return fmt.Errorf("%w: chunk_overlap (%d) must be smaller than chunk_size (%d)",
				ErrInvalidParam, p.ChunkOverlap, p.ChunkSize)
		}
	case StrategyCharacter:
		if p.ChunkSize <= 0 {
			return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidParam, p.ChunkSize)
		}
	case StrategySentence:
		if p.SentencesPerChunk < 0 {
			return fmt.Errorf("%w: sentences_per_chunk must not be negative, got %d",
				ErrInvalidParam, p.SentencesPerChunk)
		}
	case StrategyToken:
		if p.TokenLimit <= 0 {
			return fmt.Errorf("%w: token_limit must be positive, got %d", ErrInvalidParam, p.TokenLimit)
		}
		if p.TokenOverlap < 0 {
			return fmt.Errorf("%w: token_overlap must not be negative, got %d", ErrInvalidParam, p.TokenOverlap)
		}
		if p.TokenOverlap >= p.TokenLimit {
			return fmt.Errorf("%w: token_overlap (%d) must be smaller than token_limit (%d)",
				ErrInvalidParam, p.TokenOverlap, p.TokenLimit)
		}
	case StrategyMarkdown:
		if p.MinHeaderDepth < 0 || p.MaxHeaderDepth < 0 {
			return fmt.Errorf("%w: header depths must not be negative", ErrInvalidParam)
		}
		if p.MinHeaderDepth > 0 && p.MaxHeaderDepth > 0 && p.MinHeaderDepth > p.MaxHeaderDepth {
			return fmt.Errorf("%w: min_header_depth (%d) exceeds max_header_depth (%d)",
				ErrInvalidParam, p.MinHeaderDepth, p.MaxHeaderDepth)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, p.Strategy)
	}

	if len(c.Documents) == 0 {
		return ErrNoDocuments
	}
	for i, d := range c.Documents {
		if d.Name == "" {
			return fmt.Errorf("%w: document %d has no name", ErrInvalidParam, i)
		}
		if d.Path == "" && d.Text == "" {
			return fmt.Errorf("%w: document %q has neither path nor text", ErrInvalidParam, d.Name)
		}
	}
	return nil
}

func strategyStem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

func strategyRank(s Strategy) int {
	for i, v := range StrategyOrder {
		if v == s {
			return i
		}
	}
	return len(StrategyOrder)
}
