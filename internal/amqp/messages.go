package amqp

import (
	"encoding/json"
	"time"
)

// CallLoggedMessage announces a saved call log. It carries only identifiers;
// consumers load the full record from the store.
type CallLoggedMessage struct {
	LogID      int64     `json:"log_id"`
	ProspectID int64     `json:"prospect_id"`
	Outcome    string    `json:"outcome,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCallLoggedMessage(logID, prospectID int64, outcome string) *CallLoggedMessage {
	return &CallLoggedMessage{
		LogID:      logID,
		ProspectID: prospectID,
		Outcome:    outcome,
		Timestamp:  time.Now(),
	}
}

func (m *CallLoggedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CallLoggedMessageFromJSON(data []byte) (*CallLoggedMessage, error) {
	var msg CallLoggedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
