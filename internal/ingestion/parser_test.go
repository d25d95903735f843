package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSubject(t *testing.T) {
	tests := []struct {
		name      string
		subject   string
		wantToken string
		wantOK    bool
	}{
		{
			name:      "token followed by text",
			subject:   "Case #PRH-2022-000001 Building permit",
			wantToken: "PRH-2022-000001",
			wantOK:    true,
		},
		{
			name:      "token at end of subject",
			subject:   "Case #PRH-2022-000001",
			wantToken: "PRH-2022-000001",
			wantOK:    true,
		},
		{
			name:    "no hash",
			subject: "Case PRH-2022-000001",
			wantOK:  false,
		},
		{
			name:    "empty subject",
			subject: "",
			wantOK:  false,
		},
		{
			name:      "hash at start",
			subject:   "#KC-2026-000042 hello",
			wantToken: "KC-2026-000042",
			wantOK:    true,
		},
		{
			name:      "second hash is part of nothing",
			subject:   "Re: #A-1 and #B-2",
			wantToken: "A-1",
			wantOK:    true,
		},
		{
			name:      "trailing punctuation stays in token",
			subject:   "About #A-1, thanks",
			wantToken: "A-1,",
			wantOK:    true,
		},
		{
			name:    "hash immediately before space",
			subject: "weird # subject",
			wantOK:  false,
		},
		{
			name:    "lone hash at end",
			subject: "weird #",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := ParseSubject(tt.subject)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
