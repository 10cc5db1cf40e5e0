// Package notify turns job-application events into user-facing
// notifications: a realtime broadcast to the owner's room and a templated
// email delivered asynchronously through the worker pool.
package notify

import (
	"context"
	"time"

	"github.com/jobtrack/jobtrack/internal/data/repository"
	"github.com/jobtrack/jobtrack/internal/realtime"
	"github.com/jobtrack/jobtrack/pkg/email"
	"github.com/jobtrack/jobtrack/pkg/logger"
	"github.com/jobtrack/jobtrack/pkg/worker"
)

// Occasion identifies what happened to a job application.
type Occasion string

const (
	OccasionCreated       Occasion = "created"
	OccasionStatusChanged Occasion = "status_changed"
)

// Event describes one notifiable change.
type Event struct {
	Occasion       Occasion
	Job            *repository.Job
	RecipientEmail string
}

// Notifier dispatches notifications for job-application events.
type Notifier interface {
	Notify(ctx context.Context, event *Event)
}

// Dispatcher fans an event out to the realtime hub and the email worker
// pool. Both paths are best-effort: a failure is logged and never surfaces
// to the request that triggered it.
type Dispatcher struct {
	hub    *realtime.Hub
	pool   *worker.Pool
	sender email.Sender
	logger *logger.Logger
}

// NewDispatcher creates a dispatcher. A nil sender disables email delivery;
// realtime broadcasts are still made.
func NewDispatcher(hub *realtime.Hub, pool *worker.Pool, sender email.Sender, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		hub:    hub,
		pool:   pool,
		sender: sender,
		logger: logger,
	}
}

// Notify broadcasts to the owner's room first, then queues the email.
// The realtime path is ephemeral: offline users miss it and only get the
// email.
func (d *Dispatcher) Notify(ctx context.Context, event *Event) {
	content := Render(event.Occasion, event.Job)
	if content == nil {
		d.logger.Warnf(ctx, "unknown notification occasion %q, dropping", event.Occasion)
		return
	}

	d.hub.Broadcast(event.Job.Owner, &realtime.Notification{
		Title:     content.Title,
		Message:   content.Message,
		Timestamp: time.Now(),
	})

	if d.sender == nil || event.RecipientEmail == "" {
		return
	}

	recipient := event.RecipientEmail
	msg := email.Message{
		Subject: content.Subject,
		HTML:    content.Body,
	}
	err := d.pool.Submit(func() error {
		if _, err := d.sender.SendEmail(recipient, msg); err != nil {
			d.logger.Errorf(context.Background(), "failed to send notification email to %s: %v", recipient, err)
			return err
		}
		return nil
	})
	if err != nil {
		d.logger.Warnf(ctx, "email queue full, dropping notification for %s", recipient)
	}
}
