package events

import (
	"encoding/json"
	"time"
)

type Op string

const (
	OpAppend  Op = "append"
	OpCorrect Op = "correct"
	OpDelete  Op = "delete"
)

// LedgerEvent mirrors one ledger mutation onto the message bus so external
// consumers (backup jobs, dashboards) can follow along without polling the
// sheet.
type LedgerEvent struct {
	Op        Op        `json:"op"`
	Row       int       `json:"row"`
	Date      string    `json:"date,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Category  string    `json:"category,omitempty"`
	Type      string    `json:"type,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var msg LedgerEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
