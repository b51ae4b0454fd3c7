package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mailer"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const maxReportedErrors = 5

// Mailer is implemented by mailer.SMTPMailer.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// MissingSMTPError lists the SMTP variables that are not set.
type MissingSMTPError struct {
	Params []string
}

func (e *MissingSMTPError) Error() string {
	return "Не заполнены параметры SMTP: " + strings.Join(e.Params, ", ")
}

func (e *MissingSMTPError) Unwrap() error { return ErrConfig }

// SendError wraps an SMTP delivery failure.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return "Ошибка отправки: " + e.Err.Error() }

func (e *SendError) Unwrap() error { return e.Err }

type MailService struct {
	Repo      *repo.GormRepo
	SMTP      config.SMTP
	Mailer    Mailer
	Promotion *PromotionService
}

func (s *MailService) checkConfig() error {
	if missing := s.SMTP.Missing(); len(missing) > 0 {
		return &MissingSMTPError{Params: missing}
	}
	return nil
}

func (s *MailService) SendTest(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("Email не указан: %w", ErrValidation)
	}
	if err := s.checkConfig(); err != nil {
		return err
	}
	if err := s.Mailer.Send(ctx, testEmail(email)); err != nil {
		return &SendError{Err: err}
	}
	return nil
}

// Subscribe stores the subscriber and tries to send the welcome email. The
// subscription stands even when the email fails; welcomeErr reports that.
func (s *MailService) Subscribe(ctx context.Context, email string) (welcomeErr error, err error) {
	if _, err := normalizeEmail(email); err != nil {
		return nil, fmt.Errorf("Некорректный email адрес: %w", ErrValidation)
	}
	email, err = s.Promotion.Subscribe(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.checkConfig(); err != nil {
		return err, nil
	}
	if err := s.Mailer.Send(ctx, welcomeEmail(email)); err != nil {
		logging.FromContext(ctx).Warn("welcome_email_failed", "error", err)
		return err, nil
	}
	return nil, nil
}

// SendNewsletter mails every active subscriber one at a time. Individual
// failures are counted and the first few are reported.
func (s *MailService) SendNewsletter(ctx context.Context, req transport.NewsletterRequest) (*transport.NewsletterReport, error) {
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.HTML) == "" {
		return nil, fmt.Errorf("subject и html обязательны: %w", ErrValidation)
	}
	if err := s.checkConfig(); err != nil {
		return nil, err
	}
	subs, err := s.Repo.ActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	text := req.Text
	if text == "" {
		text = req.Subject
	}
	report := &transport.NewsletterReport{Success: true, Total: len(subs), Errors: []string{}}
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := s.Mailer.Send(ctx, mailer.Message{To: sub.Email, Subject: req.Subject, HTML: req.HTML, Text: text})
		if err != nil {
			report.Failed++
			if len(report.Errors) < maxReportedErrors {
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", sub.Email, err))
			}
			continue
		}
		report.Sent++
	}
	logging.FromContext(ctx).Info("newsletter_sent", "total", report.Total, "sent", report.Sent, "failed", report.Failed)
	return report, nil
}

func testEmail(to string) mailer.Message {
	return mailer.Message{
		To:      to,
		Subject: "Тестовое письмо WhiteShishka",
		HTML:    "<h2>✅ Тест успешен!</h2><p>SMTP настроен правильно, письма работают.</p>",
		Text:    "Тест успешен! SMTP настроен правильно, письма работают.",
	}
}

func welcomeEmail(to string) mailer.Message {
	return mailer.Message{
		To:      to,
		Subject: "Добро пожаловать в WhiteShishka!",
		HTML: `<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h2 style="color: #8B4513;">Спасибо за подписку!</h2>
      <p>Здравствуйте!</p>
      <p>Вы успешно подписались на новости и акции WhiteShishka.</p>
      <p>Теперь вы будете первыми узнавать о:</p>
      <ul>
        <li>Новых поступлениях товаров</li>
        <li>Специальных предложениях и скидках</li>
        <li>Эксклюзивных акциях для подписчиков</li>
      </ul>
      <p style="margin-top: 30px;">С уважением,<br>Команда WhiteShishka</p>
    </div>
  </body>
</html>`,
		Text: "Спасибо за подписку!\n\nВы успешно подписались на новости и акции WhiteShishka.\n\nС уважением,\nКоманда WhiteShishka",
	}
}
