package mailbox

import (
	"strings"
	"time"
)

// Header is the closed set of email headers the pipeline cares about.
// Wire headers outside this set are dropped during decoding.
type Header string

const (
	HeaderMessageID     Header = "MESSAGE_ID"
	HeaderInReplyTo     Header = "IN_REPLY_TO"
	HeaderReferences    Header = "REFERENCES"
	HeaderAutoSubmitted Header = "AUTO_SUBMITTED"
)

var knownHeaders = map[Header]struct{}{
	HeaderMessageID:     {},
	HeaderInReplyTo:     {},
	HeaderReferences:    {},
	HeaderAutoSubmitted: {},
}

// ParseHeader normalizes a raw wire header key ("Message-ID", "In-Reply-To")
// and reports whether it belongs to the closed set.
func ParseHeader(key string) (Header, bool) {
	normalized := Header(strings.ToUpper(strings.ReplaceAll(key, "-", "_")))
	_, ok := knownHeaders[normalized]
	return normalized, ok
}

// WireKey returns the RFC 2822 header name for outbound requests.
func (h Header) WireKey() string {
	switch h {
	case HeaderMessageID:
		return "Message-ID"
	case HeaderInReplyTo:
		return "In-Reply-To"
	case HeaderReferences:
		return "References"
	case HeaderAutoSubmitted:
		return "Auto-Submitted"
	}
	return string(h)
}

// InboundEmail is one message fetched from a tenant mailbox. It is transient:
// sourced fresh on every poll and never persisted in this form. Wire decoding
// lives in the client; this is the domain shape.
type InboundEmail struct {
	ID          string
	Subject     string
	Sender      string
	Recipients  []string
	Message     string
	Headers     map[Header][]string
	Metadata    map[string]string
	ReceivedAt  time.Time
	Attachments []EmailAttachment
}

type EmailAttachment struct {
	ID          string
	Name        string
	ContentType string
}

// HeaderValues returns the values for h, or nil.
func (e *InboundEmail) HeaderValues(h Header) []string {
	if e.Headers == nil {
		return nil
	}
	return e.Headers[h]
}

// FirstRecipient returns the first recipient address, or "".
func (e *InboundEmail) FirstRecipient() string {
	if len(e.Recipients) == 0 {
		return ""
	}
	return e.Recipients[0]
}
