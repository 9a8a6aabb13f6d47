package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"
)

func smtpClient() (*mail.Client, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "ssl0.ovh.net"
	}
	return mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
}

// SendContactEmail relaie un message du formulaire de contact vers la
// boîte de l'équipe, avec l'adresse de l'expéditeur en Reply-To.
func SendContactEmail(fromEmail, subject, body string) error {
	inbox := os.Getenv("CONTACT_INBOX")
	if inbox == "" {
		inbox = "contact@instock.app"
	}

	msg := mail.NewMsg()
	if err := msg.From("noreply@instock.app"); err != nil {
		return err
	}
	if err := msg.To(inbox); err != nil {
		return err
	}
	if err := msg.ReplyTo(fromEmail); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("[Contact] %s", subject))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("De: %s\n\n%s", fromEmail, body))

	client, err := smtpClient()
	if err != nil {
		return err
	}

	log.Println("📤 Relais du message de contact de", fromEmail)
	return client.DialAndSend(msg)
}

// SendLowStockAlertEmail prévient le commerçant quand un article passe
// sous le seuil d'alerte.
func SendLowStockAlertEmail(to, itemName string, stock int) error {
	msg := mail.NewMsg()
	if err := msg.From("noreply@instock.app"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Stock faible : %s", itemName))
	msg.SetBodyString(mail.TypeTextHTML, GenerateLowStockHTML(itemName, stock))

	client, err := smtpClient()
	if err != nil {
		return err
	}

	log.Println("📤 Alerte stock faible envoyée à", to)
	return client.DialAndSend(msg)
}

// GenerateLowStockHTML génère le HTML de l'alerte de stock faible
func GenerateLowStockHTML(itemName string, stock int) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Alerte de stock</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #d9534f;">Stock faible</h2>
		<p>Bonjour,</p>
		<p>L'article <strong>%s</strong> n'a plus que <strong>%d</strong> unité(s) en stock.</p>
		<p>Pensez à passer une commande de réapprovisionnement depuis votre tableau de bord.</p>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe InStock</strong>
		</p>
	</div>
</body>
</html>`, itemName, stock)
}
