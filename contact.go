package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/smtp"

	"github.com/gin-gonic/gin"

	"github.com/MyOne00/portfolio/internal/logger"
)

type Mailer interface {
	Send(name, email, message string) error
}

var errSMTPNotConfigured = errors.New("SMTP credentials not configured")

type smtpMailer struct {
	cfg SMTPConfig
}

func (m *smtpMailer) Send(name, email, message string) error {
	if !m.cfg.Configured() {
		return errSMTPNotConfigured
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
Neue Nachricht über das Kontaktformular:

Name: %s
E-Mail: %s
Nachricht:
%s
`, name, email, message)

	msg := []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

type contactForm struct {
	FullName string `form:"fullName" binding:"required,max=200"`
	Email    string `form:"email" binding:"required,email"`
	Message  string `form:"message" binding:"required,max=5000"`
}

func (app *App) handleContact(c *gin.Context) {
	log := logger.From(c.Request.Context())

	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusUnprocessableEntity, "contact-error.html", gin.H{
			"error": "Bitte fülle alle Felder mit einer gültigen E-Mail-Adresse aus.",
		})
		return
	}

	if err := app.mailer.Send(form.FullName, form.Email, form.Message); err != nil {
		log.Error("failed to send contact email", "error", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Leider konnte die Nachricht nicht gesendet werden. Bitte versuche es später erneut.",
		})
		return
	}

	log.Info("contact email sent")
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Erfolgreich gesendet! Ich melde mich bald.",
	})
}
