package mailbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmailsDecodesAndFiltersHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2281/email", r.URL.Path)
		assert.Equal(t, "KC", r.URL.Query().Get("namespace"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "mail-1",
				"subject": "Case #KC-2026-000001",
				"sender": "citizen@example.com",
				"recipients": ["contact@municipality.se"],
				"message": "body text",
				"headers": {
					"Message-ID": ["<abc@x>"],
					"References": ["<old@x>"],
					"X-Spam-Score": ["0.1"]
				},
				"metadata": {"labels": "a;b"},
				"receivedAt": "2026-08-30T10:00:00Z",
				"attachments": [
					{"id": "att-1", "name": "permit.pdf", "contentType": "application/pdf"}
				]
			}
		]`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	emails, err := client.ListEmails(context.Background(), "KC", "2281")
	require.NoError(t, err)
	require.Len(t, emails, 1)

	email := emails[0]
	assert.Equal(t, "mail-1", email.ID)
	assert.Equal(t, []string{"<abc@x>"}, email.Headers[HeaderMessageID])
	assert.Equal(t, []string{"<old@x>"}, email.Headers[HeaderReferences])
	assert.NotContains(t, email.Headers, Header("X_SPAM_SCORE"))
	assert.Equal(t, map[string]string{"labels": "a;b"}, email.Metadata)
	require.Len(t, email.Attachments, 1)
	assert.Equal(t, "att-1", email.Attachments[0].ID)
}

func TestListEmailsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	_, err := client.ListEmails(context.Background(), "KC", "2281")
	assert.Error(t, err)
}

func TestDeleteEmail(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	err := client.DeleteEmail(context.Background(), "2281", "mail-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/2281/email/mail-1", gotPath)
}

func TestGetAttachment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2281/email/mail-1/attachments/att-1", r.URL.Path)
		w.Write([]byte("pdf bytes"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	data, err := client.GetAttachment(context.Background(), "2281", "mail-1", "att-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)
}
