package resolve

import (
	"strconv"
	"strings"
	"time"

	"github.com/loopdesk/escalate/internal/types"
)

// DefaultTemplate is used when a destination configures no template of its own.
const DefaultTemplate = "User needs help with: {{message}}\nConfidence: {{confidence}}\nTime: {{timestamp}}"

// Recognized template placeholders.
const (
	PlaceholderMessage    = "{{message}}"
	PlaceholderConfidence = "{{confidence}}"
	PlaceholderTimestamp  = "{{timestamp}}"
	PlaceholderUserEmail  = "{{userEmail}}"
)

// Render substitutes the recognized placeholders with facts from the
// context. Confidence renders as a raw float with two decimals ("0.42"),
// timestamps as RFC 3339 UTC, and a missing user email as an empty string.
//
// Unrecognized placeholders stay verbatim in the output. Permissive on
// purpose: an authoring typo like {{confidnce}} shows up in the delivered
// message where someone will notice it, instead of being silently dropped.
func Render(template string, c types.Context) string {
	if template == "" {
		template = DefaultTemplate
	}
	return strings.NewReplacer(
		PlaceholderMessage, c.Message,
		PlaceholderConfidence, strconv.FormatFloat(c.Confidence, 'f', 2, 64),
		PlaceholderTimestamp, c.Timestamp.UTC().Format(time.RFC3339),
		PlaceholderUserEmail, c.UserEmail,
	).Replace(template)
}
