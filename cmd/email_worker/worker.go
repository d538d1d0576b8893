package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/pkg/mailer"
)

type outcome int

const (
	ack outcome = iota
	requeue
	drop
)

type sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type worker struct {
	Sender sender
	Logger *logrus.Logger
}

// handle delivers one queued job. Undecodable or incomplete jobs are
// dropped; delivery failures are requeued.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad email job")
		return drop
	}
	if job.To == "" || job.Subject == "" {
		w.Logger.WithField("to", job.To).Warn("email job missing recipient or subject")
		return drop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	msg := mailer.Message{To: job.To, Subject: job.Subject, Text: job.Text, HTML: job.HTML}
	if err := w.Sender.Send(c, msg); err != nil {
		w.Logger.WithError(err).WithField("to", job.To).Error("send failed")
		return requeue
	}
	w.Logger.WithFields(logrus.Fields{"to": job.To, "subject": job.Subject}).Info("email sent")
	return ack
}
