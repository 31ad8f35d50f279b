package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

// Mailer sends moderation mail to the operator address.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func New(host string, port int, from, password, to string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, from, password),
		from:   from,
		to:     to,
	}
}

// NotifyReport mails the operator about a freshly filed report.
func (m *Mailer) NotifyReport(report *domain.Report) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("New report: %s", report.ListingTitle))
	msg.SetBody("text/plain", fmt.Sprintf(
		"A listing was reported.\n\nListing: %s (%s)\nReason: %s\nReporter: %s (%d)\nFiled at: %s\n",
		report.ListingTitle, report.ListingID, report.Reason,
		report.ReporterName, report.ReporterID,
		report.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	return m.dialer.DialAndSend(msg)
}
