package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFollowValidation(t *testing.T) {
	tests := []struct {
		name    string
		follow  *Follow
		wantErr bool
	}{
		{
			name:    "valid edge",
			follow:  &Follow{User: "sarah", Author: "conor"},
			wantErr: false,
		},
		{
			name:    "self follow",
			follow:  &Follow{User: "sarah", Author: "sarah"},
			wantErr: true,
		},
		{
			name:    "missing user",
			follow:  &Follow{Author: "conor"},
			wantErr: true,
		},
		{
			name:    "missing author",
			follow:  &Follow{User: "sarah"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.follow.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserPassword(t *testing.T) {
	user := &User{Username: "sarah"}
	assert.NoError(t, user.SetPassword("hunter2"))
	assert.NotEmpty(t, user.PasswordHash)
	assert.True(t, user.CheckPassword("hunter2"))
	assert.False(t, user.CheckPassword("hunter3"))
}
