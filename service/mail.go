package application

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

var (
	smtpServer     = "smtp.office365.com"
	smtpServerPort = 587
	smtpEmail      = os.Getenv("SMTP_AUTH_MAIL")
	smtpPassword   = os.Getenv("SMTP_AUTH_PASSWORD")
)

// sendBookingConfirmationMail is best-effort. Without SMTP credentials the
// mail is skipped, a booking never fails because of it.
func sendBookingConfirmationMail(email, listingName string, total int) error {
	if smtpEmail == "" {
		return nil
	}

	message := gomail.NewMessage()
	message.SetHeader("From", smtpEmail)
	message.SetHeader("To", email)
	message.SetHeader("Subject", "Your booking is confirmed")

	bodyString := fmt.Sprintf("Your stay at %s is confirmed.\nTotal charged: %d", listingName, total)
	message.SetBody("text", bodyString)

	client := gomail.NewDialer(smtpServer, smtpServerPort, smtpEmail, smtpPassword)

	if err := client.DialAndSend(message); err != nil {
		log.Printf("failed to send booking confirmation mail: %s", err)
		return err
	}

	return nil
}
