package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sophiakit/sophiakit/internal/artifact"
)

func logEntry(t *testing.T, line string) artifact.LogEntry {
	t.Helper()
	var e artifact.LogEntry
	if err := json.Unmarshal([]byte(line), &e); err != nil {
		t.Fatalf("unmarshal %q: %v", line, err)
	}
	return e
}

func TestWriteLogTable(t *testing.T) {
	entries := []artifact.LogEntry{
		logEntry(t, `{"timestamp":"2024-03-01T10:00:00Z","level":"INFO","message":"boot"}`),
		logEntry(t, `{"timestamp":"2024-03-01T10:01:00Z","level":"ERROR","message":"disk full"}`),
	}

	var b strings.Builder
	if err := writeLogTable(&b, entries); err != nil {
		t.Fatalf("writeLogTable: %v", err)
	}
	out := b.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "TIME") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "boot") || !strings.Contains(lines[2], "disk full") {
		t.Errorf("rows out of file order:\n%s", out)
	}
}

func TestWriteLogTable_NonObjectLine(t *testing.T) {
	entries := []artifact.LogEntry{
		logEntry(t, `"plain string event"`),
	}

	var b strings.Builder
	if err := writeLogTable(&b, entries); err != nil {
		t.Fatalf("writeLogTable: %v", err)
	}
	if !strings.Contains(b.String(), `"plain string event"`) {
		t.Errorf("non-object line not shown verbatim:\n%s", b.String())
	}
}
