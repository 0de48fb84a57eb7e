package artifact

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/sophiakit/sophiakit/internal/notify"
)

// The loaders never return an error. Every failure degrades to the typed
// default for that artifact plus a diagnostic through the reporter, so a
// broken or missing file can never take a page down. Loading is a pure
// function of the file content: same bytes, same result.

const (
	ethicsSchemaFormat = "%s does not contain the expected 'ethical_events' key or is not a dictionary."
	graphSchemaFormat  = "%s does not contain 'nodes' and 'edges' keys or is not a dictionary."
)

// EmptyEthicsDatabase returns the degraded-load default: no events, empty
// trend summary.
func EmptyEthicsDatabase() EthicsDatabase {
	return EthicsDatabase{Events: []EthicsEvent{}}
}

// EmptyKnowledgeGraph returns the degraded-load default. The collections are
// empty but non-nil so counts render as zero rather than as a missing graph.
func EmptyKnowledgeGraph() KnowledgeGraph {
	return KnowledgeGraph{Nodes: []GraphNode{}, Edges: []GraphEdge{}}
}

// LoadEthicsDatabase parses the ethics event store at path as one JSON
// document. The document must be a mapping with an `ethical_events`
// sequence; `trend_analysis` and any other keys pass through untouched.
func LoadEthicsDatabase(path string, r notify.Reporter) EthicsDatabase {
	data, err := os.ReadFile(path)
	if err != nil {
		reportReadError(r, "Ethics DB", path, err)
		return EmptyEthicsDatabase()
	}

	var db EthicsDatabase
	if err := json.Unmarshal(data, &db); err != nil {
		reportUnmarshalError(r, path, err, ethicsSchemaFormat)
		return EmptyEthicsDatabase()
	}
	if !db.Has("ethical_events") {
		notify.Warningf(r, notify.KindSchemaError, ethicsSchemaFormat, path)
		return EmptyEthicsDatabase()
	}
	return db
}

// LoadKnowledgeGraph parses the concept graph at path as one JSON document.
// The document must be a mapping carrying both `nodes` and `edges`.
func LoadKnowledgeGraph(path string, r notify.Reporter) KnowledgeGraph {
	data, err := os.ReadFile(path)
	if err != nil {
		reportReadError(r, "Knowledge Graph", path, err)
		return EmptyKnowledgeGraph()
	}

	var g KnowledgeGraph
	if err := json.Unmarshal(data, &g); err != nil {
		reportUnmarshalError(r, path, err, graphSchemaFormat)
		return EmptyKnowledgeGraph()
	}
	if !g.Has("nodes") || !g.Has("edges") {
		notify.Warningf(r, notify.KindSchemaError, graphSchemaFormat, path)
		return EmptyKnowledgeGraph()
	}
	return g
}

// maxLogLine caps a single log line at 1 MiB; the scanner default of 64 KiB
// is too small for verbose event payloads.
const maxLogLine = 1024 * 1024

// LoadSystemEventLog reads the newline-delimited event log at path. Each
// non-blank line is parsed independently: lines that are not valid JSON are
// skipped with a per-line diagnostic while the rest of the file still loads.
// This per-line tolerance is deliberate and differs from the two
// whole-document loaders above.
func LoadSystemEventLog(path string, r notify.Reporter) []LogEntry {
	f, err := os.Open(path)
	if err != nil {
		reportReadError(r, "System Event Log", path, err)
		return []LogEntry{}
	}
	defer f.Close()

	entries := []LogEntry{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLogLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			notify.Warningf(r, notify.KindDecodeError, "Could not decode JSON from line %d in %s. Skipping line.", lineNo, path)
			continue
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		notify.Errorf(r, notify.KindUnexpected, "An unexpected error occurred while loading %s: %v", path, err)
		return []LogEntry{}
	}
	return entries
}

// reportReadError classifies a file open/read failure.
func reportReadError(r notify.Reporter, label, path string, err error) {
	if os.IsNotExist(err) {
		notify.Errorf(r, notify.KindNotFound, "%s file not found at %s. Please check the path.", label, path)
		return
	}
	notify.Errorf(r, notify.KindUnexpected, "An unexpected error occurred while loading %s: %v", path, err)
}

// reportUnmarshalError classifies a document parse failure: malformed JSON
// is a decode error, structurally wrong JSON is a schema warning.
func reportUnmarshalError(r notify.Reporter, path string, err error, schemaFormat string) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		notify.Errorf(r, notify.KindDecodeError, "Could not decode JSON from %s. The file might be corrupted or empty.", path)
	case errors.As(err, &typeErr):
		notify.Warningf(r, notify.KindSchemaError, schemaFormat, path)
	default:
		notify.Errorf(r, notify.KindUnexpected, "An unexpected error occurred while loading %s: %v", path, err)
	}
}
