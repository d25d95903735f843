package ingestion

import (
	"casemail/internal/constants"
	"casemail/internal/emailconf"
	"casemail/internal/mailbox"
	"casemail/internal/messaging"
)

// ComposeAutoReply builds the closing reply for an inbound email so that mail
// clients thread it with the original conversation. The original Message-ID
// becomes In-Reply-To and is appended to References, then dropped from the
// outgoing headers so the reply does not claim it as its own. Auto-Submitted
// is always set to stop downstream auto-responder loops.
func ComposeAutoReply(email *mailbox.InboundEmail, cfg *emailconf.TenantEmailConfig) messaging.EmailRequest {
	headers := make(map[mailbox.Header][]string, len(email.Headers)+2)
	for header, values := range email.Headers {
		headers[header] = append([]string(nil), values...)
	}

	if ids := email.HeaderValues(mailbox.HeaderMessageID); len(ids) > 0 {
		messageID := ids[0]
		headers[mailbox.HeaderInReplyTo] = []string{messageID}
		headers[mailbox.HeaderReferences] = append(headers[mailbox.HeaderReferences], messageID)
		delete(headers, mailbox.HeaderMessageID)
	}
	headers[mailbox.HeaderAutoSubmitted] = []string{constants.AutoSubmittedValue}

	return messaging.EmailRequest{
		Sender:     cfg.ErrandClosedEmailSender,
		SenderName: cfg.ErrandClosedEmailSender,
		Recipient:  email.Sender,
		Subject:    cfg.ErrandClosedEmailSubject,
		Message:    cfg.ErrandClosedEmailTemplate,
		Headers:    headers,
	}
}
