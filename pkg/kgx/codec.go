package kgx

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Canonical column order for written files. Readers are header-driven and
// accept any column order.
var (
	nodeColumns = []string{
		"id", "category", "name", "description",
		"xref", "synonym", "iri", "provided_by", "deprecated",
	}
	edgeColumns = []string{
		"id", "subject", "predicate", "object",
		"relation", "provided_by", "knowledge_source",
	}
)

// NodeFileName returns the conventional nodes file name for a graph name.
func NodeFileName(name string) string { return name + "_nodes.tsv" }

// EdgeFileName returns the conventional edges file name for a graph name.
func EdgeFileName(name string) string { return name + "_edges.tsv" }

// WriteGraph writes the graph as a nodes/edges TSV pair under dir.
func WriteGraph(g *Graph, dir, name string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	nodesPath := filepath.Join(dir, NodeFileName(name))
	if err := writeFile(nodesPath, func(w io.Writer) error {
		return WriteNodes(w, g.Nodes())
	}); err != nil {
		return fmt.Errorf("writing %s: %w", nodesPath, err)
	}

	edgesPath := filepath.Join(dir, EdgeFileName(name))
	if err := writeFile(edgesPath, func(w io.Writer) error {
		return WriteEdges(w, g.Edges())
	}); err != nil {
		return fmt.Errorf("writing %s: %w", edgesPath, err)
	}

	return nil
}

// ReadGraph loads a nodes/edges TSV pair from dir into a new graph.
func ReadGraph(dir, name string) (*Graph, error) {
	g := NewGraph()

	nodesPath := filepath.Join(dir, NodeFileName(name))
	if err := readFile(nodesPath, func(r io.Reader) error {
		return ReadNodes(r, g.AddNode)
	}); err != nil {
		return nil, fmt.Errorf("reading %s: %w", nodesPath, err)
	}

	edgesPath := filepath.Join(dir, EdgeFileName(name))
	if err := readFile(edgesPath, func(r io.Reader) error {
		return ReadEdges(r, func(e *Edge) { g.AddEdge(e) })
	}); err != nil {
		return nil, fmt.Errorf("reading %s: %w", edgesPath, err)
	}

	return g, nil
}

// WriteNodes writes a node TSV with the canonical header.
func WriteNodes(w io.Writer, nodes []*Node) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(nodeColumns, "\t") + "\n"); err != nil {
		return err
	}

	row := make([]string, len(nodeColumns))
	for _, n := range nodes {
		row[0] = n.ID
		row[1] = n.Category
		row[2] = sanitizeCell(n.Name)
		row[3] = sanitizeCell(n.Description)
		row[4] = sanitizeList(n.Xrefs)
		row[5] = sanitizeList(n.Synonyms)
		row[6] = n.IRI
		row[7] = n.ProvidedBy
		row[8] = strconv.FormatBool(n.Deprecated)
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteEdges writes an edge TSV with the canonical header.
func WriteEdges(w io.Writer, edges []*Edge) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(edgeColumns, "\t") + "\n"); err != nil {
		return err
	}

	row := make([]string, len(edgeColumns))
	for _, e := range edges {
		row[0] = e.ID
		row[1] = e.Subject
		row[2] = e.Predicate
		row[3] = e.Object
		row[4] = e.Relation
		row[5] = e.ProvidedBy
		row[6] = e.KnowledgeSource
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadNodes streams nodes from a TSV, calling fn for each row.
func ReadNodes(r io.Reader, fn func(*Node)) error {
	return readRows(r, func(get func(string) string) error {
		id := get("id")
		if id == "" {
			return fmt.Errorf("node row without id")
		}
		fn(&Node{
			ID:          id,
			Category:    get("category"),
			Name:        get("name"),
			Description: get("description"),
			Xrefs:       splitList(get("xref")),
			Synonyms:    splitList(get("synonym")),
			IRI:         get("iri"),
			ProvidedBy:  get("provided_by"),
			Deprecated:  get("deprecated") == "true",
		})
		return nil
	})
}

// ReadEdges streams edges from a TSV, calling fn for each row.
func ReadEdges(r io.Reader, fn func(*Edge)) error {
	return readRows(r, func(get func(string) string) error {
		subject, object := get("subject"), get("object")
		if subject == "" || object == "" {
			return fmt.Errorf("edge row without subject or object")
		}
		fn(&Edge{
			ID:              get("id"),
			Subject:         subject,
			Predicate:       get("predicate"),
			Object:          object,
			Relation:        get("relation"),
			ProvidedBy:      get("provided_by"),
			KnowledgeSource: get("knowledge_source"),
		})
		return nil
	})
}

// readRows parses a header-driven TSV and calls fn once per data row with a
// column accessor. Short rows read as empty cells; long rows are an error.
func readRows(r io.Reader, fn func(get func(string) string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return err
		}
		return fmt.Errorf("missing header row")
	}

	header := strings.Split(scanner.Text(), "\t")
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		cells := strings.Split(line, "\t")
		if len(cells) > len(header) {
			return fmt.Errorf("line %d: %d cells for %d columns", lineNum, len(cells), len(header))
		}

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(cells) {
				return ""
			}
			return cells[i]
		}

		if err := fn(get); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ListSeparator)
}

// sanitizeList joins multivalued items, stripping characters that would
// break the TSV framing or read back as a spurious list split.
func sanitizeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	cleaned := make([]string, len(items))
	for i, item := range items {
		cleaned[i] = strings.ReplaceAll(sanitizeCell(item), ListSeparator, " ")
	}
	return strings.Join(cleaned, ListSeparator)
}

// sanitizeCell strips characters that would break the TSV framing.
func sanitizeCell(s string) string {
	if !strings.ContainsAny(s, "\t\n\r") {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, s)
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}
