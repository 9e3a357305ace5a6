package resolve

import (
	"testing"
	"time"

	"github.com/loopdesk/escalate/internal/types"
	"github.com/stretchr/testify/assert"
)

func testContext() types.Context {
	return types.Context{
		Message:    "my order never arrived",
		Confidence: 0.42,
		UserEmail:  "casey@example.com",
		SiteID:     "site-main",
		Timestamp:  time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
		Hour:       14,
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		context  types.Context
		expected string
	}{
		{
			name:     "all placeholders",
			template: "{{message}} / {{confidence}} / {{timestamp}} / {{userEmail}}",
			context:  testContext(),
			expected: "my order never arrived / 0.42 / 2025-06-02T14:30:00Z / casey@example.com",
		},
		{
			name:     "confidence renders with two decimals",
			template: "{{confidence}}",
			context:  types.Context{Confidence: 0.3},
			expected: "0.30",
		},
		{
			name:     "unrecognized placeholder stays verbatim",
			template: "score: {{confidnce}}",
			context:  testContext(),
			expected: "score: {{confidnce}}",
		},
		{
			name:     "missing user email renders empty",
			template: "from {{userEmail}}!",
			context:  types.Context{Message: "hi", Timestamp: time.Now()},
			expected: "from !",
		},
		{
			name:     "no placeholders passes through",
			template: "escalation fired",
			context:  testContext(),
			expected: "escalation fired",
		},
		{
			name:     "repeated placeholder substitutes everywhere",
			template: "{{message}} -- {{message}}",
			context:  types.Context{Message: "hi"},
			expected: "hi -- hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.template, tt.context))
		})
	}
}

func TestRender_EmptyTemplateUsesDefault(t *testing.T) {
	got := Render("", testContext())
	assert.Equal(t,
		"User needs help with: my order never arrived\nConfidence: 0.42\nTime: 2025-06-02T14:30:00Z",
		got)
}

func TestRender_TimestampNormalizedToUTC(t *testing.T) {
	offset := time.FixedZone("UTC+2", 2*60*60)
	c := types.Context{Timestamp: time.Date(2025, 6, 2, 16, 30, 0, 0, offset)}
	assert.Equal(t, "2025-06-02T14:30:00Z", Render("{{timestamp}}", c))
}
