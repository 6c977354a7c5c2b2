package session

import (
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/creatorhub/internal/models"
)

// SnapshotKey is the metadata key holding the persisted session.
const SnapshotKey = "auth"

// Snapshot is the persisted form of an authenticated session.
type Snapshot struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

var errMalformedSnapshot = errors.New("malformed snapshot")

func decodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.User == nil || s.Token == "" {
		return nil, errMalformedSnapshot
	}
	return &s, nil
}
