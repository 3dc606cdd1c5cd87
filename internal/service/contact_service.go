package service

import (
	"fmt"

	"goblog/internal/pkg"
)

const contactSubject = "Contact from Blog"

// ContactService relays contact-form submissions to the configured
// recipient mailbox. No retry, no queuing; a transport failure
// propagates to the caller.
type ContactService struct {
	mailer    pkg.Mailer
	recipient string
}

func NewContactService(mailer pkg.Mailer, recipient string) *ContactService {
	return &ContactService{mailer: mailer, recipient: recipient}
}

func (s *ContactService) Relay(name, email, phone, message string) error {
	body := fmt.Sprintf("%s\n%s\n%s\n%s", name, email, phone, message)
	return s.mailer.Send(s.recipient, contactSubject, body)
}
