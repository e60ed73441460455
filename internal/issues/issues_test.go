package issues

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garethr/openapi2jsonschema/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name: "error with underlying error",
			issue: Issue{
				TypeName: "io.k8s.api.core.v1.Pod",
				Kind:     "Pod",
				Message:  "error processing type",
				Severity: severity.SeverityError,
				Err:      errors.New("boom"),
			},
			want: "✗ io.k8s.api.core.v1.Pod: error processing type: boom",
		},
		{
			name: "warning without error",
			issue: Issue{
				TypeName: "io.k8s.api.core.v1.Pod",
				Message:  "has no properties",
				Severity: severity.SeverityWarning,
			},
			want: "⚠ io.k8s.api.core.v1.Pod: has no properties",
		},
		{
			name: "falls back to kind when type name missing",
			issue: Issue{
				Kind:     "Pod",
				Message:  "skipped",
				Severity: severity.SeverityInfo,
			},
			want: "ℹ Pod: skipped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}
