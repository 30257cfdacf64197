package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"gopherblog/internal/mail"
)

// MailPublisher queues outgoing mail for the mail worker. It satisfies
// mail.Sender, so callers do not know delivery is deferred.
type MailPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewMailPublisher(conn *amqp.Connection, queueName string) *MailPublisher {
	return &MailPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *MailPublisher) Send(ctx context.Context, msg mail.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail payload failed: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         payload,
		},
	); err != nil {
		return fmt.Errorf("publish mail failed: %w", err)
	}
	return nil
}
