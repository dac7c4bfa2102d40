package service

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"assistantia/model"
	"assistantia/store"
)

// SMTPConfig carries the optional mail settings for the operator digest.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

func (c SMTPConfig) enabled() bool {
	return c.Host != "" && c.To != ""
}

// MaintenanceService owns the daily background work: sweeping the orphaned
// messages the non-transactional delete sequences can leave behind, and
// mailing a short activity digest to the operator.
type MaintenanceService struct {
	store  store.Store
	smtp   SMTPConfig
	logger *logrus.Logger
}

func NewMaintenanceService(st store.Store, smtpCfg SMTPConfig, logger *logrus.Logger) *MaintenanceService {
	return &MaintenanceService{store: st, smtp: smtpCfg, logger: logger}
}

// SweepOrphans deletes messages whose conversation is gone.
func (s *MaintenanceService) SweepOrphans(ctx context.Context) (int64, error) {
	removed, err := s.store.DeleteOrphanMessages(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep orphan messages: %w", err)
	}
	return removed, nil
}

// ActivityReport counts what happened since a cutoff.
type ActivityReport struct {
	Since            string
	NewUsers         int64
	NewConversations int64
	NewMessages      int64
}

// Activity gathers counts for the trailing window.
func (s *MaintenanceService) Activity(ctx context.Context, window time.Duration) (*ActivityReport, error) {
	since := time.Now().UTC().Add(-window).Format(model.TimeLayout)

	users, err := s.store.CountUsersSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	conversations, err := s.store.CountConversationsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count conversations: %w", err)
	}
	messages, err := s.store.CountMessagesSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	return &ActivityReport{
		Since:            since,
		NewUsers:         users,
		NewConversations: conversations,
		NewMessages:      messages,
	}, nil
}

// RunDaily is the cron entry point. Every failure is logged and swallowed;
// background work never takes the server down.
func (s *MaintenanceService) RunDaily(ctx context.Context) {
	s.logger.Infof("[%s] Start scheduled maintenance", "scheduled task")

	removed, err := s.SweepOrphans(ctx)
	if err != nil {
		s.logger.Warnf("[%s] orphan sweep error, %s", "scheduled task", err)
	} else if removed > 0 {
		s.logger.Infof("[%s] swept %d orphaned messages", "scheduled task", removed)
	}

	report, err := s.Activity(ctx, 24*time.Hour)
	if err != nil {
		s.logger.Warnf("[%s] activity report error, %s", "scheduled task", err)
		return
	}
	s.logger.Infof("[%s] last 24h: %d users, %d conversations, %d messages",
		"scheduled task", report.NewUsers, report.NewConversations, report.NewMessages)

	if !s.smtp.enabled() {
		return
	}
	if err := s.sendDigest(report); err != nil {
		s.logger.Warnf("[%s] digest email error, %s", "scheduled task", err)
		return
	}
	s.logger.Infof("[%s] digest email sent to %s", "scheduled task", s.smtp.To)
}

// sendDigest renders the report as markdown and mails the HTML to the
// operator address.
func (s *MaintenanceService) sendDigest(report *ActivityReport) error {
	md := fmt.Sprintf(`# Daily activity digest

Window start: %s

| Metric | Count |
| --- | --- |
| New users | %d |
| New conversations | %d |
| New messages | %d |
`, report.Since, report.NewUsers, report.NewConversations, report.NewMessages)

	e := email.NewEmail()
	e.From = s.smtp.User
	e.To = []string{s.smtp.To}
	e.Subject = "AssistantIA daily digest"
	e.HTML = markdown.ToHTML([]byte(md), nil, nil)

	addr := fmt.Sprintf("%s:%s", s.smtp.Host, s.smtp.Port)
	var auth smtp.Auth
	if s.smtp.User != "" {
		auth = smtp.PlainAuth("", s.smtp.User, s.smtp.Password, s.smtp.Host)
	}
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}
