package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"accounthub/internal/model"
)

// AsyncMailPublisher enqueues an email job for the mail worker.
type AsyncMailPublisher interface {
	Publish(ctx context.Context, job model.EmailJob) error
}

// MailNotifier queues lifecycle emails and returns immediately. The
// enclosing request never waits for, or learns about, the send outcome;
// publish failures go to the log only.
type MailNotifier struct {
	publisher AsyncMailPublisher
}

func NewMailNotifier(publisher AsyncMailPublisher) *MailNotifier {
	return &MailNotifier{publisher: publisher}
}

func (n *MailNotifier) SendWelcome(email, name string) {
	n.enqueue(model.EmailJob{
		To:      email,
		Subject: "Welcome to the club!",
		Body:    fmt.Sprintf("Hey there %s, let me know how you're getting along with the app!", name),
	})
}

func (n *MailNotifier) SendFarewell(email, name string) {
	n.enqueue(model.EmailJob{
		To:      email,
		Subject: "Take care, all the best",
		Body:    fmt.Sprintf("Hi %s, we're sorry to see you go! If there is anything we could have done better, feel free to let us know", name),
	})
}

func (n *MailNotifier) enqueue(job model.EmailJob) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.publisher.Publish(ctx, job); err != nil {
			log.Printf("enqueue email to %s failed: %v", job.To, err)
		}
	}()
}
