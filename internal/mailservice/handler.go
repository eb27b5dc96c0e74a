package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/bloglist/internal/common"
	"golang.org/x/exp/rand"
)

const (
	welcomeTemplate = "welcome_email.html"

	defaultMaxRetries = 5
	defaultBaseDelay  = 500 * time.Millisecond
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, logger MailLogger) *MailService {
	return newMailService(mb, NewMailer(host, port, username, password, sender, NewTemplate()), logger)
}

func newMailService(mb common.MessageConsumer, m Mailer, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          m,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
}

// SendWelcomeEmail starts consuming user.created events in the background and
// mails every new user a welcome message. It returns once the consumer is set up.
func (s *MailService) SendWelcomeEmail() error {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.WelcomeMailQueue)
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handleUserCreated(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping welcome email consumer")
				return
			}
		}
	}()

	return nil
}

func (s *MailService) handleUserCreated(msg amqp.Delivery) {
	var event common.UserCreatedEvent

	err := json.Unmarshal(msg.Body, &event)
	if err != nil || event.Email == "" {
		s.logger.Error("could not decode user created event", slog.String("body", string(msg.Body)))
		// malformed events are dropped rather than redelivered forever
		_ = msg.Nack(false, false)
		return
	}

	data := welcomeData{Username: event.Username, Name: event.Name}
	if data.Name == "" {
		data.Name = event.Username
	}

	// using exponential backoff with jitter
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err = s.m.send(event.Email, data, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", event.Email))
			_ = msg.Ack(false)
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", event.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			// leave it for redelivery after restart
			_ = msg.Nack(false, true)
			return
		}
	}

	s.logger.Error("could not send welcome email", slog.String("email", event.Email), slog.String("error", err.Error()))
	_ = msg.Ack(false)
}

// Close stops the consumer and waits for an in-flight email to finish.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
