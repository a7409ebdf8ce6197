// Package statsplit turns the stats array of an API response into typed
// aggregates.
//
// The API answers a stats query with an array whose elements come in two
// shapes: a flat entry carrying one "stat" payload, or a wrapper carrying a
// "splits" list. Normalize flattens both into Records keyed by (type, group).
// Extract then consumes one Record per request and reduces its splits into
// the aggregate the caller asked for.
package statsplit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// Group is the stat group of a record, e.g. "hitting".
type Group string

const (
	GroupHitting  Group = "hitting"
	GroupPitching Group = "pitching"
	GroupFielding Group = "fielding"
	GroupCatching Group = "catching"
	GroupRunning  Group = "running"
	GroupGame     Group = "game"
	GroupTeam     Group = "team"
	GroupStreak   Group = "streak"
)

// Record is every raw split reported for one (type, group) pair, in the
// order the API sent them.
type Record struct {
	Type   string
	Group  Group
	Values []json.RawMessage
}

// Pool holds the normalized records of one response. Extract removes what it
// matches, so a Pool must not be shared between goroutines without locking;
// use Clone to hand each caller its own.
type Pool struct {
	records []Record
}

func NewPool(records ...Record) *Pool {
	out := make([]Record, 0, len(records))
	for _, record := range records {
		out = append(out, cloneRecord(record))
	}
	return &Pool{records: out}
}

func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.records)
}

// Records returns a copy of the records still in the pool.
func (p *Pool) Records() []Record {
	if p == nil {
		return nil
	}
	out := make([]Record, 0, len(p.records))
	for _, record := range p.records {
		out = append(out, cloneRecord(record))
	}
	return out
}

func (p *Pool) Clone() *Pool {
	if p == nil {
		return &Pool{}
	}
	return &Pool{records: p.Records()}
}

func (p *Pool) Has(typeName string, group Group) bool {
	return p.index(typeName, group) >= 0
}

func (p *Pool) take(typeName string, group Group) (Record, bool) {
	idx := p.index(typeName, group)
	if idx < 0 {
		return Record{}, false
	}
	record := p.records[idx]
	p.records = append(p.records[:idx], p.records[idx+1:]...)
	return record, true
}

func (p *Pool) index(typeName string, group Group) int {
	if p == nil {
		return -1
	}
	typeName = strings.TrimSpace(typeName)
	for i, record := range p.records {
		if record.Group == group && strings.EqualFold(record.Type, typeName) {
			return i
		}
	}
	return -1
}

// NormalizeResponse normalizes the "stats" array of a response document.
// A document without the key yields an empty pool.
func NormalizeResponse(doc []byte) (*Pool, error) {
	var envelope struct {
		Stats []json.RawMessage `json:"stats"`
	}
	if err := sonic.Unmarshal(doc, &envelope); err != nil {
		return nil, malformed(err, "decode stats envelope")
	}
	return normalizeEntries(envelope.Stats)
}

// Normalize normalizes a bare stats array.
func Normalize(array []byte) (*Pool, error) {
	trimmed := bytes.TrimSpace(array)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &Pool{}, nil
	}

	var entries []json.RawMessage
	if err := sonic.Unmarshal(trimmed, &entries); err != nil {
		return nil, malformed(err, "decode stats array")
	}
	return normalizeEntries(entries)
}

func normalizeEntries(entries []json.RawMessage) (*Pool, error) {
	acc := newAccumulator(len(entries))
	for i, entry := range entries {
		records, err := decodeEntry(entry)
		if err != nil {
			return nil, malformed(err, "stats[%d]", i)
		}
		for _, record := range records {
			acc.add(record)
		}
	}
	return &Pool{records: acc.records}, nil
}

// malformed keeps both ErrMalformedStats and err reachable by errors.Is.
func malformed(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrMalformedStats, crerr.Wrapf(err, format, args...))
}

// decodeEntry tries each known entry shape in order and reports the last
// failure when none fits.
func decodeEntry(raw json.RawMessage) ([]Record, error) {
	var lastErr error
	for _, decode := range []func(json.RawMessage) ([]Record, error){decodeWrapperEntry, decodeFlatEntry} {
		records, err := decode(raw)
		if err == nil {
			return records, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

type wrapperEntry struct {
	Type   label              `json:"type"`
	Group  label              `json:"group"`
	Splits *[]json.RawMessage `json:"splits"`
}

type flatEntry struct {
	Type  label           `json:"type"`
	Group label           `json:"group"`
	Stat  json.RawMessage `json:"stat"`
}

type splitHeader struct {
	Type  label `json:"type"`
	Group label `json:"group"`
}

func decodeWrapperEntry(raw json.RawMessage) ([]Record, error) {
	var entry wrapperEntry
	if err := sonic.Unmarshal(raw, &entry); err != nil {
		return nil, crerr.Wrap(err, "decode wrapper entry")
	}
	if entry.Splits == nil {
		return nil, crerr.New("wrapper entry has no splits")
	}

	acc := newAccumulator(1)
	for i, split := range *entry.Splits {
		var header splitHeader
		if err := sonic.Unmarshal(split, &header); err != nil {
			return nil, crerr.Wrapf(err, "decode split #%d header", i)
		}
		typeName := header.Type.or(entry.Type)
		group := header.Group.or(entry.Group)
		if typeName == "" || group == "" {
			return nil, crerr.Newf("split #%d has no type or group", i)
		}
		acc.add(Record{Type: typeName, Group: Group(group), Values: []json.RawMessage{split}})
	}
	return acc.records, nil
}

func decodeFlatEntry(raw json.RawMessage) ([]Record, error) {
	var entry flatEntry
	if err := sonic.Unmarshal(raw, &entry); err != nil {
		return nil, crerr.Wrap(err, "decode flat entry")
	}
	if entry.Type.Name == "" || entry.Group.Name == "" {
		return nil, crerr.New("flat entry has no type or group")
	}
	if len(entry.Stat) == 0 {
		return nil, crerr.New("flat entry has no stat")
	}
	return []Record{{
		Type:   entry.Type.Name,
		Group:  Group(entry.Group.Name),
		Values: []json.RawMessage{raw},
	}}, nil
}

// accumulator merges records sharing a (type, group) pair and keeps
// first-seen order of pairs and of values.
type accumulator struct {
	records []Record
	byKey   map[string]int
}

func newAccumulator(capacity int) *accumulator {
	return &accumulator{
		records: make([]Record, 0, capacity),
		byKey:   make(map[string]int, capacity),
	}
}

func (a *accumulator) add(record Record) {
	key := strings.ToLower(record.Type) + "\x00" + string(record.Group)
	if idx, ok := a.byKey[key]; ok {
		a.records[idx].Values = append(a.records[idx].Values, copyValues(record.Values)...)
		return
	}
	a.byKey[key] = len(a.records)
	a.records = append(a.records, Record{
		Type:   record.Type,
		Group:  record.Group,
		Values: copyValues(record.Values),
	})
}

// label is a type or group name sent either as "season" or as
// {"displayName": "season"}.
type label struct {
	Name string
}

func (l *label) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		l.Name = ""
		return nil
	}

	if trimmed[0] == '"' {
		var name string
		if err := sonic.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		l.Name = strings.TrimSpace(name)
		return nil
	}

	var wrapped struct {
		DisplayName *string `json:"displayName"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	if wrapped.DisplayName == nil {
		return crerr.Newf("expected a name or {\"displayName\"}, got %s", abbreviate(trimmed))
	}
	l.Name = strings.TrimSpace(*wrapped.DisplayName)
	return nil
}

func (l label) or(fallback label) string {
	if l.Name != "" {
		return l.Name
	}
	return fallback.Name
}

func cloneRecord(record Record) Record {
	return Record{Type: record.Type, Group: record.Group, Values: copyValues(record.Values)}
}

func copyValues(values []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(values))
	for _, value := range values {
		out = append(out, append(json.RawMessage(nil), value...))
	}
	return out
}

func abbreviate(raw []byte) string {
	const limit = 64
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
