package eventbus

import (
	"encoding/json"
	"time"

	"github.com/amirasaad/bankcore/pkg/eventbus"
)

// envelope is the wire format shared by the redis and kafka buses.
type envelope struct {
	Type     string          `json:"type"`
	Key      string          `json:"key,omitempty"`
	Payload  json.RawMessage `json:"payload"`
	Produced time.Time       `json:"produced"`
}

// keyed events carry a partitioning key.
type keyed interface {
	Key() string
}

func encode(event eventbus.Event) (envelope, []byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return envelope{}, nil, err
	}
	env := envelope{Type: event.Type(), Payload: data, Produced: time.Now().UTC()}
	if k, ok := event.(keyed); ok {
		env.Key = k.Key()
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return envelope{}, nil, err
	}
	return env, raw, nil
}

// RawEvent is delivered to handlers of the broker-backed buses. Payload is
// the JSON encoding of the emitted event.
type RawEvent struct {
	EventType string
	Key       string
	Payload   json.RawMessage
}

func (e RawEvent) Type() string { return e.EventType }
