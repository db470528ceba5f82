package models

import "time"

// User is an account identity. Posts, comments and follow edges reference
// users by username.
type User struct {
	ID           int    `validate:"gte=0"`
	Username     string `validate:"required,min=2,max=50,alphanum"`
	PasswordHash []byte `json:",omitempty" validate:"-"`
}

// Group is a topic posts can be filed under. The slug is the URL key.
type Group struct {
	ID          int    `validate:"gte=0"`
	Title       string `validate:"required,min=1,max=200"`
	Slug        string `validate:"required,min=1,max=100"`
	Description string `validate:"-"`
}

// Post is a short text entry published by an author, optionally filed under
// a group and optionally carrying an image.
type Post struct {
	ID      int    `validate:"gte=0"`
	Text    string `validate:"required,min=1"`
	Author  string `validate:"required"`
	GroupID int    `validate:"gte=0"`
	// ImageID is the media blob key, empty when the post has no image.
	ImageID string    `validate:"-"`
	PubDate time.Time `validate:"-"`
}

// Comment is a reader's note on a post. Immutable once created.
type Comment struct {
	ID        int       `validate:"gte=0"`
	PostID    int       `validate:"required,gt=0"`
	Author    string    `validate:"required"`
	Text      string    `validate:"required,min=1"`
	CreatedAt time.Time `validate:"-"`
}

// Follow is a directed edge: User observes Author's posts in their feed.
type Follow struct {
	User   string `validate:"required"`
	Author string `validate:"required"`
}

// Media is a stored image blob, served at /media/<ID>.
type Media struct {
	ID          string `validate:"required"`
	ContentType string `validate:"required"`
	Data        []byte `validate:"required"`
}
