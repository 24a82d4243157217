package splitter

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// Markdown splits a document at heading boundaries. Each chunk is one
// heading section, and the heading hierarchy is preserved in the chunk's
// HeaderPath ("# Title > ## Section"). A document without headings becomes a
// single chunk with an empty HeaderPath.
type Markdown struct {
	minDepth int
	maxDepth int
	parser   goldmark.Markdown
}

// NewMarkdown creates a markdown-header splitter covering headings between
// minDepth and maxDepth. Zero values default to H1 and H2.
func NewMarkdown(minDepth, maxDepth int) *Markdown {
	if minDepth <= 0 {
		minDepth = 1
	}
	if maxDepth <= 0 {
		maxDepth = 2
	}
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Markdown{
		minDepth: minDepth,
		maxDepth: maxDepth,
		parser:   md,
	}
}

func (s *Markdown) Split(input string) ([]Chunk, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyDocument
	}
	source := []byte(input)

	reader := text.NewReader(source)
	doc := s.parser.Parser().Parse(reader)

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(s.minDepth),
		toc.MaxDepth(s.maxDepth),
		toc.Compact(true),
	)
	if err != nil {
		return nil, err
	}

	// No headings: the whole document is one chunk.
	if len(tree.Items) == 0 {
		return []Chunk{{Index: 0, Text: input}}, nil
	}

	var chunks []Chunk
	s.collectSections(doc, source, tree.Items, nil, &chunks)
	return chunks, nil
}

// pathEntry keeps a heading's title together with its document level, so
// the header path renders real levels (an H2-rooted path is "## ...").
type pathEntry struct {
	level int
	title string
}

// collectSections walks the TOC tree, emitting one chunk per heading section
// with the accumulated header path.
func (s *Markdown) collectSections(doc ast.Node, source []byte, items toc.Items, ancestors []pathEntry, chunks *[]Chunk) {
	for i, item := range items {
		headingNode := headingByID(doc, string(item.ID))
		if headingNode == nil {
			continue
		}
		level := headingNode.(*ast.Heading).Level
		path := append(ancestors, pathEntry{level: level, title: string(item.Title)})

		startLine := headingNode.Lines().At(0)
		var endLine text.Segment
		if i+1 < len(items) {
			if next := headingByID(doc, string(items[i+1].ID)); next != nil {
				endLine = next.Lines().At(0)
			}
		} else {
			endLine = nextSectionBoundary(doc, headingNode, level)
		}

		*chunks = append(*chunks, Chunk{
			Index:      len(*chunks),
			Text:       sectionText(source, startLine, endLine),
			HeaderPath: headerPath(path),
		})

		if len(item.Items) > 0 {
			s.collectSections(doc, source, item.Items, path, chunks)
		}
	}
}

// headerPath renders a heading hierarchy as "# A > ## B > ### C".
func headerPath(entries []pathEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = strings.Repeat("#", e.level) + " " + e.title
	}
	return strings.Join(parts, " > ")
}

// headingByID locates a heading node by its auto-generated ID.
func headingByID(node ast.Node, id string) ast.Node {
	var found ast.Node
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			attr, ok := n.(*ast.Heading).AttributeString("id")
			if ok && string(attr.([]byte)) == id {
				found = n
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return found
}

// nextSectionBoundary finds the first heading after current at the same or a
// shallower level. Returns the zero segment when the section runs to EOF.
func nextSectionBoundary(root ast.Node, current ast.Node, level int) text.Segment {
	var boundary ast.Node
	passedCurrent := false

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		if !passedCurrent {
			if n == current {
				passedCurrent = true
			}
			return ast.WalkContinue, nil
		}
		if n.(*ast.Heading).Level <= level {
			boundary = n
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if boundary != nil {
		return boundary.Lines().At(0)
	}
	return text.Segment{}
}

// sectionText extracts the source text between two line segments, trimmed.
func sectionText(source []byte, start, end text.Segment) string {
	if end.Start == 0 && end.Stop == 0 {
		return strings.TrimSpace(string(source[start.Start:]))
	}
	return strings.TrimSpace(string(source[start.Start:end.Start]))
}
