package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/mlb-stats/internal/domain/statsplit"
)

var outputJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

func writeJSON(w io.Writer, v any) error {
	enc := outputJSON.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func statsGroup(raw string) statsplit.Group {
	return statsplit.Group(strings.ToLower(strings.TrimSpace(raw)))
}
