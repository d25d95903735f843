package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		want   Header
		wantOK bool
	}{
		{"message id wire form", "Message-ID", HeaderMessageID, true},
		{"lowercase", "in-reply-to", HeaderInReplyTo, true},
		{"already normalized", "REFERENCES", HeaderReferences, true},
		{"auto submitted", "Auto-Submitted", HeaderAutoSubmitted, true},
		{"unknown header", "X-Spam-Score", "X_SPAM_SCORE", false},
		{"content type not in set", "Content-Type", "CONTENT_TYPE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, ok := ParseHeader(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, header)
		})
	}
}

func TestWireKey(t *testing.T) {
	assert.Equal(t, "Message-ID", HeaderMessageID.WireKey())
	assert.Equal(t, "In-Reply-To", HeaderInReplyTo.WireKey())
	assert.Equal(t, "References", HeaderReferences.WireKey())
	assert.Equal(t, "Auto-Submitted", HeaderAutoSubmitted.WireKey())
}

func TestHeaderValues(t *testing.T) {
	email := InboundEmail{Headers: map[Header][]string{
		HeaderMessageID: {"<abc@x>"},
	}}
	assert.Equal(t, []string{"<abc@x>"}, email.HeaderValues(HeaderMessageID))
	assert.Nil(t, email.HeaderValues(HeaderReferences))

	var noHeaders InboundEmail
	assert.Nil(t, noHeaders.HeaderValues(HeaderMessageID))
}

func TestFirstRecipient(t *testing.T) {
	email := InboundEmail{Recipients: []string{"a@x", "b@x"}}
	assert.Equal(t, "a@x", email.FirstRecipient())

	empty := InboundEmail{}
	assert.Equal(t, "", empty.FirstRecipient())
}
