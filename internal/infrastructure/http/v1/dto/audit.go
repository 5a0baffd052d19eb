package dto

import (
	"encoding/json"
	"time"
)

// AuditEntryResponse is one row of an entity's change history.
type AuditEntryResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	Changes   json.RawMessage `json:"changes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type AuditHistoryResponse struct {
	Items []AuditEntryResponse `json:"items"`
}
