package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type EmailHTTP struct {
	Svc *service.MailService
}

func (h *EmailHTTP) SendTest(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "email.test")

	var req transport.EmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "test_email_error", err)
	}

	if err := h.Svc.SendTest(ctx, req.Email); err != nil {
		return fail(l, "test_email_error", err)
	}
	return success(c, map[string]any{"message": "Тестовое письмо отправлено на " + req.Email})
}

func (h *EmailHTTP) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "email.subscribe")

	var req transport.EmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "email_subscribe_error", err)
	}

	welcomeErr, err := h.Svc.Subscribe(ctx, req.Email)
	if err != nil {
		return fail(l, "email_subscribe_error", err)
	}
	if welcomeErr != nil {
		return success(c, map[string]any{"message": "Подписка оформлена, но письмо не отправлено: " + welcomeErr.Error()})
	}
	return success(c, map[string]any{"message": "Вы успешно подписались! Приветственное письмо отправлено."})
}

func (h *EmailHTTP) SendNewsletter(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "email.newsletter")

	var req transport.NewsletterRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "newsletter_send_error", err)
	}

	report, err := h.Svc.SendNewsletter(ctx, req)
	if err != nil {
		return fail(l, "newsletter_send_error", err)
	}
	return writeJSON(c, http.StatusOK, report)
}
