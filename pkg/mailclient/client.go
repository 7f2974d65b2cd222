/**
 * @description
 * This package provides the SMTP mail client used to deliver membership
 * certificates. It wraps jordan-wright/email with the association's sender
 * identity and renders the HTML and plain-text bodies for the certificate
 * message.
 *
 * @notes
 * - The client sends one message per call; the batch job already throttles
 *   by processing members sequentially.
 */
package mailclient

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/amang06/aim-backend/internal/domain"
)

// Client sends membership emails over SMTP.
type Client struct {
	addr string
	auth smtp.Auth
	from string
}

// NewClient creates a mail client for the given SMTP server.
func NewClient(host string, port int, username, password, from string) *Client {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &Client{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

const certificateHTMLBody = `<p>Dear %s,</p>
<p>Congratulations! Your membership with the Association of Indian Manufacturers is now active.</p>
<p>Your membership certificate is attached to this email. Please keep it for your records.</p>
<p>Warm regards,<br>Association of Indian Manufacturers</p>`

const certificateTextBody = `Dear %s,

Congratulations! Your membership with the Association of Indian Manufacturers is now active.

Your membership certificate is attached to this email. Please keep it for your records.

Warm regards,
Association of Indian Manufacturers`

// SendCertificate emails the member their certificate PDF.
func (c *Client) SendCertificate(ctx context.Context, member domain.MemberApplication, certificate []byte, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := email.NewEmail()
	msg.From = c.from
	msg.To = []string{member.CompanyEmail}
	if member.ContactEmail != "" && member.ContactEmail != member.CompanyEmail {
		msg.Cc = []string{member.ContactEmail}
	}
	msg.Subject = "Your AIM Membership Certificate"
	msg.HTML = []byte(fmt.Sprintf(certificateHTMLBody, member.CompanyName))
	msg.Text = []byte(fmt.Sprintf(certificateTextBody, member.CompanyName))

	if _, err := msg.Attach(bytes.NewReader(certificate), filename, "application/pdf"); err != nil {
		return fmt.Errorf("attach certificate: %w", err)
	}

	if err := msg.Send(c.addr, c.auth); err != nil {
		return fmt.Errorf("send certificate email to %s: %w", member.CompanyEmail, err)
	}
	return nil
}
