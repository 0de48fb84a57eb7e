// Package artifact models and loads the three files the Sophia agent
// maintains: the ethics event database, the knowledge graph, and the
// newline-delimited system event log. All types are open records: known
// fields are broken out for convenience while the full raw document is
// preserved, so keys this tool does not understand survive a round trip
// untouched.
package artifact

import "encoding/json"

// EthicsDatabase is the parsed ethics event store. Events is the required
// `ethical_events` sequence; Trend mirrors the optional `trend_analysis`
// mapping. Raw holds the complete top-level document.
type EthicsDatabase struct {
	Events []EthicsEvent              `json:"ethical_events"`
	Trend  TrendSummary               `json:"trend_analysis"`
	Raw    map[string]json.RawMessage `json:"-"`
}

func (d *EthicsDatabase) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Raw = raw
	if v, ok := raw["ethical_events"]; ok {
		if err := json.Unmarshal(v, &d.Events); err != nil {
			return err
		}
	}
	if v, ok := raw["trend_analysis"]; ok {
		// A non-mapping summary renders as absent, not as a document failure.
		_ = json.Unmarshal(v, &d.Trend)
	}
	return nil
}

func (d EthicsDatabase) MarshalJSON() ([]byte, error) {
	if d.Raw != nil {
		return json.Marshal(d.Raw)
	}
	type alias EthicsDatabase
	return json.Marshal(alias(d))
}

// Has reports whether the loaded document carried the given top-level key.
func (d EthicsDatabase) Has(key string) bool {
	_, ok := d.Raw[key]
	return ok
}

// EthicsEvent is one entry of the `ethical_events` sequence. Field values
// with unexpected types stay available through Raw; the broken-out fields
// keep their zero values.
type EthicsEvent struct {
	Timestamp  string                     `json:"timestamp"`
	Action     string                     `json:"action"`
	FinalScore float64                    `json:"final_score"`
	Raw        map[string]json.RawMessage `json:"-"`
}

func (e *EthicsEvent) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Raw = raw
	if v, ok := raw["timestamp"]; ok {
		_ = json.Unmarshal(v, &e.Timestamp)
	}
	if v, ok := raw["action"]; ok {
		_ = json.Unmarshal(v, &e.Action)
	}
	if v, ok := raw["final_score"]; ok {
		_ = json.Unmarshal(v, &e.FinalScore)
	}
	return nil
}

func (e EthicsEvent) MarshalJSON() ([]byte, error) {
	if e.Raw != nil {
		return json.Marshal(e.Raw)
	}
	type alias EthicsEvent
	return json.Marshal(alias(e))
}

// Has reports whether the event record carried the given key.
func (e EthicsEvent) Has(field string) bool {
	_, ok := e.Raw[field]
	return ok
}

// TrendSummary mirrors the optional `trend_analysis` mapping.
type TrendSummary struct {
	CurrentTrendDirection      string                     `json:"current_trend_direction"`
	ShortTermAvgScoreTWeighted float64                    `json:"short_term_avg_score_t_weighted"`
	Raw                        map[string]json.RawMessage `json:"-"`
}

func (t *TrendSummary) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Raw = raw
	if v, ok := raw["current_trend_direction"]; ok {
		_ = json.Unmarshal(v, &t.CurrentTrendDirection)
	}
	if v, ok := raw["short_term_avg_score_t_weighted"]; ok {
		_ = json.Unmarshal(v, &t.ShortTermAvgScoreTWeighted)
	}
	return nil
}

func (t TrendSummary) MarshalJSON() ([]byte, error) {
	if t.Raw != nil {
		return json.Marshal(t.Raw)
	}
	type alias TrendSummary
	return json.Marshal(alias(t))
}

// IsEmpty reports whether the summary carried no usable mapping at all,
// covering both an absent `trend_analysis` key and a non-mapping value.
func (t TrendSummary) IsEmpty() bool {
	return len(t.Raw) == 0
}

// Direction returns `current_trend_direction` for display, "N/A" when the
// key is absent. Non-string values display as their JSON text.
func (t TrendSummary) Direction() string {
	v, ok := t.Raw["current_trend_direction"]
	if !ok {
		return "N/A"
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return string(v)
	}
	return s
}

// AvgScore returns `short_term_avg_score_t_weighted`, 0 when absent or
// non-numeric.
func (t TrendSummary) AvgScore() float64 {
	v, ok := t.Raw["short_term_avg_score_t_weighted"]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return 0
	}
	return f
}

// KnowledgeGraph is the parsed concept graph. Both `nodes` and `edges` are
// required keys of the document.
type KnowledgeGraph struct {
	Nodes []GraphNode                `json:"nodes"`
	Edges []GraphEdge                `json:"edges"`
	Raw   map[string]json.RawMessage `json:"-"`
}

func (g *KnowledgeGraph) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Raw = raw
	if v, ok := raw["nodes"]; ok {
		if err := json.Unmarshal(v, &g.Nodes); err != nil {
			return err
		}
	}
	if v, ok := raw["edges"]; ok {
		if err := json.Unmarshal(v, &g.Edges); err != nil {
			return err
		}
	}
	return nil
}

func (g KnowledgeGraph) MarshalJSON() ([]byte, error) {
	if g.Raw != nil {
		return json.Marshal(g.Raw)
	}
	type alias KnowledgeGraph
	return json.Marshal(alias(g))
}

// Has reports whether the loaded document carried the given top-level key.
func (g KnowledgeGraph) Has(key string) bool {
	_, ok := g.Raw[key]
	return ok
}

// HasStructure reports whether at least one collection is non-nil. Loader
// defaults use empty non-nil collections, so this is false only when the
// document itself held null for both keys.
func (g KnowledgeGraph) HasStructure() bool {
	return g.Nodes != nil || g.Edges != nil
}

// GraphNode is one entry of the `nodes` sequence.
type GraphNode struct {
	ID    string                     `json:"id"`
	Label string                     `json:"label"`
	Raw   map[string]json.RawMessage `json:"-"`
}

func (n *GraphNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Raw = raw
	if v, ok := raw["id"]; ok {
		_ = json.Unmarshal(v, &n.ID)
	}
	if v, ok := raw["label"]; ok {
		_ = json.Unmarshal(v, &n.Label)
	}
	return nil
}

func (n GraphNode) MarshalJSON() ([]byte, error) {
	if n.Raw != nil {
		return json.Marshal(n.Raw)
	}
	type alias GraphNode
	return json.Marshal(alias(n))
}

// GraphEdge is one entry of the `edges` sequence.
type GraphEdge struct {
	Source   string                     `json:"source"`
	Target   string                     `json:"target"`
	Relation string                     `json:"relation"`
	Raw      map[string]json.RawMessage `json:"-"`
}

func (e *GraphEdge) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Raw = raw
	if v, ok := raw["source"]; ok {
		_ = json.Unmarshal(v, &e.Source)
	}
	if v, ok := raw["target"]; ok {
		_ = json.Unmarshal(v, &e.Target)
	}
	if v, ok := raw["relation"]; ok {
		_ = json.Unmarshal(v, &e.Relation)
	}
	return nil
}

func (e GraphEdge) MarshalJSON() ([]byte, error) {
	if e.Raw != nil {
		return json.Marshal(e.Raw)
	}
	type alias GraphEdge
	return json.Marshal(alias(e))
}

// LogEntry is one line of the system event log. Lines are any valid JSON
// value; object lines get their known fields broken out, everything else
// passes through verbatim in Value.
type LogEntry struct {
	Timestamp string                     `json:"timestamp"`
	Level     string                     `json:"level"`
	Message   string                     `json:"message"`
	Raw       map[string]json.RawMessage `json:"-"`
	Value     json.RawMessage            `json:"-"`
}

func (e *LogEntry) UnmarshalJSON(data []byte) error {
	e.Value = append(json.RawMessage(nil), data...)
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Valid JSON that is not an object still counts as an entry.
		return nil
	}
	e.Raw = raw
	if v, ok := raw["timestamp"]; ok {
		_ = json.Unmarshal(v, &e.Timestamp)
	}
	if v, ok := raw["level"]; ok {
		_ = json.Unmarshal(v, &e.Level)
	}
	if v, ok := raw["message"]; ok {
		_ = json.Unmarshal(v, &e.Message)
	}
	return nil
}

func (e LogEntry) MarshalJSON() ([]byte, error) {
	if len(e.Value) > 0 {
		return json.Marshal(e.Value)
	}
	type alias LogEntry
	return json.Marshal(alias(e))
}

// Has reports whether an object entry carried the given key.
func (e LogEntry) Has(field string) bool {
	_, ok := e.Raw[field]
	return ok
}

// IsObject reports whether the entry was a JSON object.
func (e LogEntry) IsObject() bool {
	return e.Raw != nil
}
