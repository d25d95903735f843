package messaging

import (
	"casemail/internal/mailbox"
)

// EmailRequest is one outbound email handed to the messaging service.
type EmailRequest struct {
	Sender     string                      `json:"sender"`
	SenderName string                      `json:"senderName,omitempty"`
	Recipient  string                      `json:"recipient"`
	Subject    string                      `json:"subject"`
	Message    string                      `json:"message,omitempty"`
	HTMLBody   string                      `json:"htmlMessage,omitempty"`
	Headers    map[mailbox.Header][]string `json:"-"`
}

// wireHeaders renders the header map with RFC 2822 names for the wire.
func (r EmailRequest) wireHeaders() map[string][]string {
	if len(r.Headers) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Headers))
	for header, values := range r.Headers {
		out[header.WireKey()] = values
	}
	return out
}
