// Package emailsvc delivers core.EmailMessage batches through SendGrid, or prints them when no
// API key is configured.
package emailsvc

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/studyplanner/core"
)

// New picks SendGrid when an API key is configured and the console otherwise.
func New(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.SendgridApiKey != "" {
		return NewSendgridService(conf, logger)
	}
	return NewConsoleService(conf, nil)
}

// sendAll renders every message and hands the deliverable ones to send concurrently.
// It returns the first error once all of them finished.
func sendAll(ctx context.Context, appName string, messages []*core.EmailMessage, send func(context.Context, core.EmailMessage) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, msg := range messages {
		msg := msg
		g.Go(func() error {
			if err := msg.Render(appName); err != nil {
				return errors.Wrap(err, "rendering email")
			}
			if !msg.HasRecipients() || !(msg.HasContent() || msg.HasAttachments()) {
				return nil
			}
			return send(ctx, *msg)
		})
	}
	return g.Wait()
}
