package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"endpage/internal/logger"
	"endpage/internal/mailer"
	"endpage/internal/models"
	"endpage/internal/validator"
)

// maxConcurrentSends bounds the fan-out of one notification batch.
const maxConcurrentSends = 4

// notificationService renders and sends transactional email.
type notificationService struct {
	sender mailer.Sender
	appURL string
	log    *zap.SugaredLogger
}

// NewNotificationService creates a new NotificationServicer. appURL is the
// public origin used to build links.
func NewNotificationService(sender mailer.Sender, appURL string) NotificationServicer {
	return &notificationService{
		sender: sender,
		appURL: appURL,
		log:    logger.Named("notifications"),
	}
}

// ShareURL is the public link of a page.
func ShareURL(appURL, uuid string) string {
	return appURL + "/share/" + uuid
}

func (s *notificationService) SendWelcome(ctx context.Context, user *models.User) {
	body, err := mailer.Render("welcome.txt", map[string]string{
		"Username": user.Username,
		"URL":      s.appURL,
	})
	if err != nil {
		s.log.Errorw("failed to render welcome email", "error", err, "user_id", user.ID)
		return
	}

	msg := mailer.Message{To: user.Email, Subject: "Welcome to The End Page", Body: body}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Errorw("failed to send welcome email", "error", err, "user_id", user.ID)
	}
}

// NotifyEndPageCreated emails every valid recipient of the page. Sends run
// concurrently, at most maxConcurrentSends at a time, and all of them are
// attempted even when some fail.
func (s *notificationService) NotifyEndPageCreated(ctx context.Context, page *models.EndPage) {
	recipients := make([]string, 0, len(page.Emails))
	for _, addr := range page.Emails {
		if !validator.IsEmail(addr) {
			s.log.Warnw("skipping invalid recipient", "email", addr, "end_page_id", page.ID)
			continue
		}
		recipients = append(recipients, addr)
	}
	if len(recipients) == 0 {
		s.log.Infow("No emails to send notification to", "end_page_id", page.ID, "title", page.Title)
		return
	}

	body, err := mailer.Render("new_end_page.txt", map[string]string{
		"Title": page.Title,
		"URL":   ShareURL(s.appURL, page.UUID),
	})
	if err != nil {
		s.log.Errorw("failed to render end page notification", "error", err, "end_page_id", page.ID)
		return
	}
	subject := fmt.Sprintf("New End Page: %s", page.Title)

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(maxConcurrentSends)
	for _, to := range recipients {
		to := to
		g.Go(func() error {
			if err := s.sender.Send(ctx, mailer.Message{To: to, Subject: subject, Body: body}); err != nil {
				s.log.Errorw("Failed to send email", "error", err, "to", to, "end_page_id", page.ID)
				return nil
			}
			s.log.Infow("Email sent successfully", "to", to, "end_page_id", page.ID)
			return nil
		})
	}
	_ = g.Wait()

	s.log.Infow("end page notifications dispatched",
		"end_page_id", page.ID,
		"recipients", len(recipients),
		"duration", time.Since(start),
	)
}
