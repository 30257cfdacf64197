package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"gopherblog/internal/mail"
)

// MailWorker drains the mail queue and delivers each message with sender.
type MailWorker struct {
	conn      *amqp.Connection
	sender    mail.Sender
	queueName string
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMailWorker(conn *amqp.Connection, sender mail.Sender, queueName string, logger *slog.Logger) *MailWorker {
	return &MailWorker{
		conn:      conn,
		sender:    sender,
		queueName: queueName,
		logger:    logger.With(slog.String("component", "mail_worker")),
	}
}

func (w *MailWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	ch, err := w.conn.Channel()
	if err != nil {
		return fmt.Errorf("open worker channel failed: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(w.queueName, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	// Detached from the caller so a request-scoped ctx does not stop the loop.
	workerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					w.logger.Warn("delivery channel closed")
					return
				}
				w.handle(workerCtx, d)
			}
		}
	}()

	return nil
}

// handle acks delivered mail, requeues a failed send once, and drops
// anything that cannot be decoded.
func (w *MailWorker) handle(ctx context.Context, d amqp.Delivery) {
	var msg mail.Message
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		w.logger.Error("decode mail failed", slog.Any("error", err))
		_ = d.Nack(false, false)
		return
	}

	if err := w.sender.Send(ctx, msg); err != nil {
		requeue := !d.Redelivered
		w.logger.Error("deliver mail failed",
			slog.String("to", msg.To),
			slog.Bool("requeue", requeue),
			slog.Any("error", err),
		)
		_ = d.Nack(false, requeue)
		return
	}

	_ = d.Ack(false)
}

func (w *MailWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
