// Package reminder e-mails a digest of the current alerts on a cron schedule.
package reminder

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/academic"
	"github.com/trezcool/studyplanner/core/notification"
)

const jobTimeout = 2 * time.Minute

var ErrNoRecipient = errors.New("no reminder recipient configured")

// DigestData is the template data of the "reminder" e-mail.
type DigestData struct {
	Student academic.Student
	Summary string
	Alerts  []notification.Alert
}

type Reminder struct {
	alerts  *notification.Engine
	email   core.EmailService
	logger  core.Logger
	to      []mail.Address
	student academic.Student
	cron    *cron.Cron
}

func New(conf *core.Config, alerts *notification.Engine, email core.EmailService, logger core.Logger) (*Reminder, error) {
	r := &Reminder{
		alerts:  alerts,
		email:   email,
		logger:  logger,
		student: conf.Student,
	}
	if conf.Reminder.To != "" {
		to, err := mail.ParseAddressList(conf.Reminder.To)
		if err != nil {
			return nil, errors.Wrap(err, "parsing reminder.to")
		}
		for _, addr := range to {
			r.to = append(r.to, *addr)
		}
	}
	return r, nil
}

// Digest builds the e-mail for the current alerts. It reports false when there is nothing to send.
func (r *Reminder) Digest() (*core.EmailMessage, bool) {
	alerts := r.alerts.Check()
	if len(alerts) == 0 {
		return nil, false
	}
	summary := notification.Summarize(alerts)
	return &core.EmailMessage{
		To:           r.to,
		Subject:      "Study reminder: " + summary,
		TemplateName: "reminder",
		TemplateData: DigestData{Student: r.student, Summary: summary, Alerts: alerts},
	}, true
}

// Send mails the digest now. It reports whether a message went out.
func (r *Reminder) Send(ctx context.Context) (bool, error) {
	if len(r.to) == 0 {
		return false, ErrNoRecipient
	}
	msg, ok := r.Digest()
	if !ok {
		r.logger.Info("no alerts, reminder skipped")
		return false, nil
	}
	if err := r.email.SendMessages(ctx, msg); err != nil {
		return false, errors.Wrap(err, "sending reminder")
	}
	r.logger.Info("reminder sent", "to", len(r.to), "alerts", len(msg.TemplateData.(DigestData).Alerts))
	return true, nil
}

// Start runs Send on the cron schedule (standard five fields, or descriptors like "@daily").
func (r *Reminder) Start(schedule string) error {
	if len(r.to) == 0 {
		return ErrNoRecipient
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{r.logger})), cron.WithLogger(cronLogger{r.logger}))
	if _, err := c.AddFunc(schedule, r.run); err != nil {
		return errors.Wrapf(err, "scheduling reminder %q", schedule)
	}
	r.cron = c
	c.Start()
	r.logger.Info("reminder scheduled", "schedule", schedule)
	return nil
}

// Stop waits for a running job to finish.
func (r *Reminder) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

func (r *Reminder) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := r.Send(ctx); err != nil {
		r.logger.Error("reminder job", "error", err)
	}
}

// cronLogger adapts core.Logger to cron.Logger.
type cronLogger struct {
	logger core.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
