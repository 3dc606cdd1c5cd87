package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mailerStub struct {
	to      string
	subject string
	body    string
	err     error
}

func (m *mailerStub) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func TestRelayComposesPlainTextBody(t *testing.T) {
	mailer := &mailerStub{}
	svc := NewContactService(mailer, "owner@x.com")

	err := svc.Relay("Bob", "bob@x.com", "555-0100", "hello there")
	require.NoError(t, err)

	assert.Equal(t, "owner@x.com", mailer.to)
	assert.Equal(t, "Contact from Blog", mailer.subject)
	assert.Equal(t, "Bob\nbob@x.com\n555-0100\nhello there", mailer.body)
}

func TestRelayPropagatesTransportFailure(t *testing.T) {
	mailer := &mailerStub{err: errors.New("smtp down")}
	svc := NewContactService(mailer, "owner@x.com")

	err := svc.Relay("Bob", "bob@x.com", "555-0100", "hello")
	assert.Error(t, err)
}
