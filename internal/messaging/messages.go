package messaging

import (
	"encoding/json"
	"errors"
	"time"
)

// AnalysisSavedMessage announces a stored analysis. Workers load the record
// themselves, so only identifiers travel on the wire.
type AnalysisSavedMessage struct {
	RecordID  string    `json:"recordId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAnalysisSavedMessage creates a message stamped with the current time
func NewAnalysisSavedMessage(recordID, userID string) *AnalysisSavedMessage {
	return &AnalysisSavedMessage{
		RecordID:  recordID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *AnalysisSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AnalysisSavedMessageFromJSON decodes a message and rejects ones without a
// record id.
func AnalysisSavedMessageFromJSON(data []byte) (*AnalysisSavedMessage, error) {
	var msg AnalysisSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.RecordID == "" {
		return nil, errors.New("message has no record id")
	}
	return &msg, nil
}
