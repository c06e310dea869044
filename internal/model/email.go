package model

// EmailJob is the payload queued for the mail worker. Subject and body
// are composed before publishing so the worker stays template-free.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
