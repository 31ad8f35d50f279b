// Package nats publishes interaction events as JSON. The bot only ever
// fans out; nothing in this process subscribes.
package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// Publisher is the write side of the interaction event stream.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) Publish(_ context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
