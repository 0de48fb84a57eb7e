package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// Field-specific series failures. The trend page distinguishes these from
// any other preparation error.
var (
	ErrNoTimestamp = errors.New("no 'timestamp' field in any ethical event")
	ErrNoScore     = errors.New("no 'final_score' field in any ethical event")
)

// ScorePoint is one charted sample of the final_score series.
type ScorePoint struct {
	Time  time.Time
	Score float64
}

// timeLayouts are tried in order for timestamps that are not RFC 3339.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ScoreSeries prepares the final_score-over-time series for charting.
// ErrNoTimestamp and ErrNoScore fire when the respective field appears in no
// event at all; ErrNoTimestamp wins when both are missing. Events carrying
// only one of the two fields are skipped. A value that cannot be parsed
// fails the whole series. Points come back sorted ascending by time, with
// the stable order preserving file order among equal timestamps.
func ScoreSeries(events []EthicsEvent) ([]ScorePoint, error) {
	var hasTimestamp, hasScore bool
	for _, e := range events {
		if e.Has("timestamp") {
			hasTimestamp = true
		}
		if e.Has("final_score") {
			hasScore = true
		}
	}
	if !hasTimestamp {
		return nil, ErrNoTimestamp
	}
	if !hasScore {
		return nil, ErrNoScore
	}

	points := make([]ScorePoint, 0, len(events))
	for _, e := range events {
		tsRaw, ok := e.Raw["timestamp"]
		if !ok {
			continue
		}
		scoreRaw, ok := e.Raw["final_score"]
		if !ok {
			continue
		}

		var tsText string
		if err := json.Unmarshal(tsRaw, &tsText); err != nil {
			return nil, fmt.Errorf("timestamp %s is not a string", tsRaw)
		}
		ts, err := parseTime(tsText)
		if err != nil {
			return nil, err
		}

		var score float64
		if err := json.Unmarshal(scoreRaw, &score); err != nil {
			return nil, fmt.Errorf("final_score %s is not a number", scoreRaw)
		}
		points = append(points, ScorePoint{Time: ts, Score: score})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ChartErrorMessage renders a ScoreSeries failure the way the trend page
// presents it.
func ChartErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoTimestamp):
		return "'timestamp' column missing in ethical events data."
	case errors.Is(err, ErrNoScore):
		return "'final_score' column missing in ethical events data."
	default:
		return fmt.Sprintf("An error occurred while preparing data for the chart: %v", err)
	}
}

// Tail returns the last n entries in original order. It never copies; the
// result aliases the input.
func Tail[E any](entries []E, n int) []E {
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[len(entries)-n:]
}
