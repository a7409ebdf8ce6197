package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	SourceStatsAPI = "statsapi"

	EntityPersonStats = "person_stats"
)

// Payload is one upstream response body kept verbatim, so a profile can be
// decoded again later without calling the API.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	PersonID    int64
	Season      string
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}

// NewPayload hashes raw and stamps it with fetchedAt.
func NewPayload(source, entityType, entityKey string, raw []byte, fetchedAt time.Time) Payload {
	sum := sha256.Sum256(raw)
	return Payload{
		Source:      source,
		EntityType:  entityType,
		EntityKey:   entityKey,
		PayloadJSON: string(raw),
		PayloadHash: hex.EncodeToString(sum[:]),
		FetchedAt:   fetchedAt.UTC(),
	}
}

func (p Payload) Validate() error {
	if p.Source == "" {
		return fmt.Errorf("payload source is required")
	}
	if p.EntityType == "" {
		return fmt.Errorf("payload entity type is required")
	}
	if p.EntityKey == "" {
		return fmt.Errorf("payload entity key is required")
	}
	if p.PayloadJSON == "" {
		return fmt.Errorf("payload body is required")
	}
	return nil
}
