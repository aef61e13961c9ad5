package mail

import "gopkg.in/gomail.v2"

type NewLeadAlertData struct {
	Name       string
	Email      string
	Phone      string
	Interest   string
	Source     string
	LeadID     string
	ReceivedAt string
}

type ClientWelcomeData struct {
	Name string
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	To     string
	dialer Dialer
}
