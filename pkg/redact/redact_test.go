package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"anna.rossi@example.com", "an***@example.com"},
		{"ab@ex.com", "***@ex.com"},
		{"user@", "us***@"},
		{"no-at", "***"},
		{"a@b@c", "***"},
		{"élodie@posta.it", "él***@posta.it"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, Email(tt.in))
		})
	}
}

func TestPhone(t *testing.T) {
	require.Equal(t, "***67", Phone("+39 345 123 4567"))
	require.Equal(t, "***", Phone("12"))
	require.Equal(t, "***", Phone(""))
}
