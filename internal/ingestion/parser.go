package ingestion

import "strings"

// ParseSubject extracts the errand number token from an email subject. The
// token runs from just after the first '#' to the next space, or to the end
// of the subject when no space follows. A second '#' is ignored and trailing
// punctuation stays part of the token; existing errand numbers rely on this
// loose matching.
//
//	"Case #PRH-2022-000001 Building permit" -> "PRH-2022-000001"
//	"Case #PRH-2022-000001"                 -> "PRH-2022-000001"
//	"Case PRH-2022-000001"                  -> none
func ParseSubject(subject string) (string, bool) {
	hash := strings.Index(subject, "#")
	if hash < 0 {
		return "", false
	}

	token := subject[hash+1:]
	if space := strings.Index(token, " "); space >= 0 {
		token = token[:space]
	}
	if token == "" {
		return "", false
	}
	return token, true
}
