package amqp

import (
	"encoding/json"
	"time"
)

// RecordKind names the table a created record belongs to.
type RecordKind string

const (
	KindIncome      RecordKind = "ingreso"
	KindExpense     RecordKind = "gasto"
	KindMaintenance RecordKind = "mantenimiento"
)

// RecordCreatedMessage is the event published after a successful insert.
// Consumers fetch the full row from the database by kind and id.
type RecordCreatedMessage struct {
	Kind      RecordKind `json:"kind"`
	ID        int64      `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
}

func NewRecordCreatedMessage(kind RecordKind, id int64) *RecordCreatedMessage {
	return &RecordCreatedMessage{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *RecordCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordCreatedMessageFromJSON(data []byte) (*RecordCreatedMessage, error) {
	var msg RecordCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
