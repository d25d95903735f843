package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"casemail/internal/emailconf"
	"casemail/internal/mailbox"
)

func closingConfig() *emailconf.TenantEmailConfig {
	return &emailconf.TenantEmailConfig{
		Namespace:                 "KC",
		MunicipalityID:            "2281",
		ErrandClosedEmailSender:   "noreply@example.com",
		ErrandClosedEmailSubject:  "Your errand has been closed",
		ErrandClosedEmailTemplate: "This errand is closed. Open a new one.",
	}
}

func TestComposeAutoReplyThreading(t *testing.T) {
	email := &mailbox.InboundEmail{
		Sender: "citizen@example.com",
		Headers: map[mailbox.Header][]string{
			mailbox.HeaderMessageID: {"<abc@x>"},
		},
	}

	reply := ComposeAutoReply(email, closingConfig())

	assert.Equal(t, []string{"<abc@x>"}, reply.Headers[mailbox.HeaderInReplyTo])
	assert.Equal(t, []string{"<abc@x>"}, reply.Headers[mailbox.HeaderReferences])
	assert.NotContains(t, reply.Headers, mailbox.HeaderMessageID)
	assert.Equal(t, []string{"auto-generated"}, reply.Headers[mailbox.HeaderAutoSubmitted])
}

func TestComposeAutoReplyAppendsToExistingReferences(t *testing.T) {
	email := &mailbox.InboundEmail{
		Sender: "citizen@example.com",
		Headers: map[mailbox.Header][]string{
			mailbox.HeaderMessageID:  {"<msg3@x>"},
			mailbox.HeaderReferences: {"<msg1@x>", "<msg2@x>"},
		},
	}

	reply := ComposeAutoReply(email, closingConfig())

	assert.Equal(t, []string{"<msg1@x>", "<msg2@x>", "<msg3@x>"}, reply.Headers[mailbox.HeaderReferences])
	assert.Equal(t, []string{"<msg3@x>"}, reply.Headers[mailbox.HeaderInReplyTo])
}

func TestComposeAutoReplyWithoutMessageID(t *testing.T) {
	email := &mailbox.InboundEmail{
		Sender:  "citizen@example.com",
		Headers: map[mailbox.Header][]string{},
	}

	reply := ComposeAutoReply(email, closingConfig())

	assert.NotContains(t, reply.Headers, mailbox.HeaderInReplyTo)
	assert.NotContains(t, reply.Headers, mailbox.HeaderReferences)
	assert.Equal(t, []string{"auto-generated"}, reply.Headers[mailbox.HeaderAutoSubmitted])
}

func TestComposeAutoReplyAddressReversal(t *testing.T) {
	email := &mailbox.InboundEmail{
		Sender: "citizen@example.com",
	}
	cfg := closingConfig()

	reply := ComposeAutoReply(email, cfg)

	assert.Equal(t, "citizen@example.com", reply.Recipient)
	assert.Equal(t, cfg.ErrandClosedEmailSender, reply.Sender)
	assert.Equal(t, cfg.ErrandClosedEmailSender, reply.SenderName)
	assert.Equal(t, cfg.ErrandClosedEmailSubject, reply.Subject)
	assert.Equal(t, cfg.ErrandClosedEmailTemplate, reply.Message)
}

func TestComposeAutoReplyDoesNotMutateOriginal(t *testing.T) {
	email := &mailbox.InboundEmail{
		Sender: "citizen@example.com",
		Headers: map[mailbox.Header][]string{
			mailbox.HeaderMessageID:  {"<abc@x>"},
			mailbox.HeaderReferences: {"<old@x>"},
		},
	}

	_ = ComposeAutoReply(email, closingConfig())

	assert.Equal(t, []string{"<abc@x>"}, email.Headers[mailbox.HeaderMessageID])
	assert.Equal(t, []string{"<old@x>"}, email.Headers[mailbox.HeaderReferences])
}
