package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGithubLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		login   string
		wantErr bool
	}{
		{"valid simple", "janedoe", false},
		{"valid with hyphen", "jane-doe", false},
		{"valid mixed case", "JaneDoe42", false},
		{"valid single character", "j", false},
		{"valid maximum length", strings.Repeat("a", 39), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 40), true},
		{"leading hyphen", "-janedoe", true},
		{"trailing hyphen", "janedoe-", true},
		{"consecutive hyphens", "jane--doe", true},
		{"underscore", "jane_doe", true},
		{"space", "jane doe", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateGithubLogin(tt.login)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
