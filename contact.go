package folio

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/views"
)

// contactMessage is the JSON body relayed to a Formspree-style endpoint.
type contactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Subject string `json:"_subject,omitempty"`
}

func newContactClient() *resty.Client {
	return resty.New().
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json")
}

func (a *App) relayContact(c echo.Context, msg contactMessage) error {
	resp, err := a.contact.R().
		SetContext(c.Request().Context()).
		SetBody(msg).
		Post(a.Config.ContactEndpoint)
	if err != nil {
		return fmt.Errorf("contact relay: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("contact relay: %s", resp.Status())
	}
	return nil
}

func (a *App) handleContact(c echo.Context) error {
	if a.contact == nil {
		return echo.ErrNotFound
	}
	lang := a.lang(c)
	msg := contactMessage{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Message: strings.TrimSpace(c.FormValue("message")),
		Subject: a.Config.Name,
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" || !strings.Contains(msg.Email, "@") {
		addFlash(c, "error", views.T(lang, "flash_unsent"))
		return c.Redirect(http.StatusSeeOther, "/#contact")
	}
	if !a.contactLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests)
	}
	if err := a.relayContact(c, msg); err != nil {
		a.Log.Warn().Err(err).Msg("contact message not delivered")
		addFlash(c, "error", views.T(lang, "flash_unsent"))
		return c.Redirect(http.StatusSeeOther, "/#contact")
	}
	addFlash(c, "success", views.T(lang, "flash_sent"))
	return c.Redirect(http.StatusSeeOther, "/#contact")
}
