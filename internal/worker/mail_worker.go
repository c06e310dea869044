package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"accounthub/internal/model"
)

// MailSender delivers one composed email to the provider.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailWorker drains the email queue and hands each job to the provider
// client. Failed sends are logged and dropped; there is no retry path.
type MailWorker struct {
	conn      *amqp.Connection
	sender    MailSender
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMailWorker(conn *amqp.Connection, sender MailSender, queueName string) *MailWorker {
	return &MailWorker{
		conn:      conn,
		sender:    sender,
		queueName: queueName,
	}
}

func (w *MailWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

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
					return
				}

				var job model.EmailJob
				if err := json.Unmarshal(d.Body, &job); err != nil {
					log.Printf("worker decode email job failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.sender.Send(workerCtx, job.To, job.Subject, job.Body); err != nil {
					log.Printf("worker send email to %s failed: %v", job.To, err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *MailWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
