package graph

// Node labels and relationship types written by the Store.
const (
	LabelDocument  = "Document"
	LabelTextChunk = "TextChunk"

	RelFromDocument = "FROM_DOCUMENT"
	RelNextChunk    = "NEXT_CHUNK"
)

// VectorDimension is the embedding size for text-embedding-3-small.
const VectorDimension = 1536

// Index names follow the source system's vector_[label]_[property]_[dims]_[similarity]
// convention.
const (
	VectorIndexName   = "vector_textchunk_embedding_1536_cosine"
	FulltextIndexName = "textchunk_fulltext"
)

// Document is a source text stored as a Document node, keyed by name.
type Document struct {
	Name string
	Text string
}

// Chunk is one TextChunk node. The (Document, Splitter, Index) triple is the
// node's identity: rewriting the same triple updates in place instead of
// duplicating. Chunkings from different splitters coexist on one document.
type Chunk struct {
	Document   string // owning document name
	Splitter   string // splitter strategy tag, e.g. "fixed-size"
	Index      int    // 0-based position within the chunking
	Text       string
	HeaderPath string    // markdown strategy only
	Embedding  []float32 // optional, 1536 dims when present
}

// ScoredChunk is a similarity search hit.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Stats summarizes the graph contents.
type Stats struct {
	Nodes         int64
	Relationships int64
	Labels        map[string]int64 // node count per label
	RelTypes      map[string]int64 // relationship count per type
	Splitters     map[string]int64 // TextChunk count per splitter tag
}
