package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:      1,
				Text:    "something worth saying",
				Author:  "sarah",
				PubDate: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "empty text",
			post: &Post{
				ID:      1,
				Text:    "",
				Author:  "sarah",
				PubDate: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author",
			post: &Post{
				ID:      1,
				Text:    "orphaned post",
				PubDate: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero publication time",
			post: &Post{
				ID:     1,
				Text:   "no timestamp",
				Author: "sarah",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Text: "hello", Author: "sarah"}
	post.BeforeCreate()
	assert.False(t, post.PubDate.IsZero())

	// An already-set publication time is never overwritten
	fixed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	post = &Post{Text: "hello", Author: "sarah", PubDate: fixed}
	post.BeforeCreate()
	assert.Equal(t, fixed, post.PubDate)
}

func TestPostHasImage(t *testing.T) {
	post := &Post{Text: "hello", Author: "sarah"}
	assert.False(t, post.HasImage())

	post.ImageID = "b6e4a7c0"
	assert.True(t, post.HasImage())
}
