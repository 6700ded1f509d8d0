// Package sender implements the worker that delivers queued
// notifications through SMTP or the SMS gateway.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fondosapp/fondos-api/internal/lib/sl"
	"github.com/fondosapp/fondos-api/internal/lib/smtp"
	"github.com/fondosapp/fondos-api/internal/models"
	"github.com/fondosapp/fondos-api/internal/smsprovider"
)

// SMSClient sends a text message through the gateway.
type SMSClient interface {
	Send(to, message string) (*smsprovider.SendResponse, error)
}

// Service consumes notification messages and delivers them.
type Service struct {
	transport smtp.TransportInterface
	sms       SMSClient
	log       *slog.Logger
}

// New creates a sender Service.
func New(transport smtp.TransportInterface, sms SMSClient, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		sms:       sms,
		log:       log,
	}
}

// HandleEmail delivers one queued email notification.
func (s *Service) HandleEmail(body []byte) error {
	var notification models.Notification
	if err := json.Unmarshal(body, &notification); err != nil {
		s.log.Error("failed to unmarshal notification", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	return s.sendEmail([]string{notification.Destino}, notification.Asunto, notification.Mensaje)
}

// HandleSMS delivers one queued sms notification.
func (s *Service) HandleSMS(body []byte) error {
	var notification models.Notification
	if err := json.Unmarshal(body, &notification); err != nil {
		s.log.Error("failed to unmarshal notification", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	resp, err := s.sms.Send(notification.Destino, notification.Mensaje)
	if err != nil {
		s.log.Error("failed to send sms", sl.Err(err))
		return err
	}

	s.log.Info("sms sent successfully",
		slog.String("id", resp.ID),
		slog.String("status", resp.Status))
	return nil
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.String("to", strings.Join(to, ";")))
	return nil
}
