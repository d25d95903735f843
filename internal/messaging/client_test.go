package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casemail/internal/mailbox"
)

func TestSendEmailRendersWireHeaders(t *testing.T) {
	var got wireEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/email", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	err := client.SendEmail(context.Background(), EmailRequest{
		Sender:    "noreply@municipality.se",
		Recipient: "citizen@example.com",
		Subject:   "Closed",
		Message:   "This errand is closed.",
		Headers: map[mailbox.Header][]string{
			mailbox.HeaderInReplyTo:     {"<abc@x>"},
			mailbox.HeaderReferences:    {"<abc@x>"},
			mailbox.HeaderAutoSubmitted: {"auto-generated"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "noreply@municipality.se", got.Sender)
	assert.Equal(t, "citizen@example.com", got.Recipient)
	assert.Equal(t, []string{"<abc@x>"}, got.Headers["In-Reply-To"])
	assert.Equal(t, []string{"<abc@x>"}, got.Headers["References"])
	assert.Equal(t, []string{"auto-generated"}, got.Headers["Auto-Submitted"])
	assert.NotContains(t, got.Headers, "Message-ID")
}

func TestSendEmailErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	err := client.SendEmail(context.Background(), EmailRequest{
		Sender:    "noreply@municipality.se",
		Recipient: "citizen@example.com",
	})
	assert.Error(t, err)
}
