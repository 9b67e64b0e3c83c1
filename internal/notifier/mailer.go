package notifier

import (
	"fmt"
	"os"
	"strconv"

	"go-suministros-api/internal/model"

	"gopkg.in/gomail.v2"
)

// MailConfig holds the SMTP settings for stock alert mail.
type MailConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Sender    string
	Recipient string
}

// MailConfigFromEnv reads the SMTP settings from environment variables.
func MailConfigFromEnv() MailConfig {
	port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil || port == 0 {
		port = 587
	}

	cfg := MailConfig{
		Host:      os.Getenv("MAIL_HOST"),
		Port:      port,
		Username:  os.Getenv("MAIL_USERNAME"),
		Password:  os.Getenv("MAIL_PASSWORD"),
		Sender:    os.Getenv("MAIL_SENDER"),
		Recipient: os.Getenv("MAIL_ALERT_RECIPIENT"),
	}
	if cfg.Sender == "" {
		cfg.Sender = "noreply@tutienda.com"
	}
	if cfg.Recipient == "" {
		cfg.Recipient = "admin@tutienda.com"
	}
	return cfg
}

// Mailer sends stock alerts over SMTP.
type Mailer struct {
	cfg MailConfig
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) SendStockAlert(product *model.Product) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Sender)
	msg.SetHeader("To", m.cfg.Recipient)
	msg.SetHeader("Subject", fmt.Sprintf("Alerta de Stock: %s", product.Name))
	msg.SetBody("text/plain", stockAlertBody(product))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}

func stockAlertBody(product *model.Product) string {
	reference := product.Reference
	if reference == "" {
		reference = "N/A"
	}

	return fmt.Sprintf(`Hola Administrador,

El sistema de gestión ha detectado que un producto ha alcanzado niveles críticos de inventario:

----------------------------------------
Producto:       %s
Referencia:     %s
Stock Actual:   %d unidades
Stock Objetivo: %d unidades
----------------------------------------

Por favor, contacta a los proveedores para realizar un reabastecimiento.

Atentamente,
Tu App de Suministros Informáticos
`, product.Name, reference, product.Stock, product.TargetStock)
}
