package event

import (
	"encoding/json"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Publisher emits telemetry events (level completions, finished runs) to
// a topic exchange so caregiver-facing services can react to them.
// Publishing is best effort: a broker failure never interrupts a session.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *zap.Logger
}

func NewPublisher(amqpURL, exchange string, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

// Publish sends one event with the event type as the routing key.
func (p *Publisher) Publish(eventType string, payload any) {
	if p == nil {
		return
	}
	body, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		p.log.Error("Failed to encode event", zap.String("type", eventType), zap.Error(err))
		return
	}

	err = p.channel.Publish(p.exchange, eventType, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.log.Warn("Failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
