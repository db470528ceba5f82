package services

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"postcard/app/models"
	"postcard/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func newTestPostService() (*PostService, *mockPostRepo, *mockGroupRepo, *mockMediaRepo) {
	postRepo := newMockPostRepo()
	groupRepo := newMockGroupRepo()
	mediaRepo := newMockMediaRepo()
	return NewPostService(postRepo, groupRepo, mediaRepo), postRepo, groupRepo, mediaRepo
}

func TestCreatePost(t *testing.T) {
	service, _, groupRepo, _ := newTestPostService()

	t.Run("sets author and publication time", func(t *testing.T) {
		post, err := service.CreatePost("sarah", "hello world", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "sarah", post.Author)
		assert.False(t, post.PubDate.IsZero())
		assert.Greater(t, post.ID, 0)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := service.CreatePost("sarah", "", 0, nil)
		assert.ErrorIs(t, err, ErrInvalidPost)
	})

	t.Run("unknown group rejected", func(t *testing.T) {
		_, err := service.CreatePost("sarah", "hello", 42, nil)
		assert.ErrorIs(t, err, ErrInvalidPost)
	})

	t.Run("post with group", func(t *testing.T) {
		group := groupTestFixture(t, groupRepo)
		post, err := service.CreatePost("sarah", "grouped", group.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, group.ID, post.GroupID)
	})
}

func TestCreatePostImage(t *testing.T) {
	service, _, _, mediaRepo := newTestPostService()

	t.Run("valid image attached", func(t *testing.T) {
		post, err := service.CreatePost("sarah", "with image", 0, pngBytes(t))
		require.NoError(t, err)
		assert.True(t, post.HasImage())

		blob, err := mediaRepo.Get(post.ImageID)
		require.NoError(t, err)
		assert.Equal(t, "image/png", blob.ContentType)
	})

	t.Run("non-image upload silently dropped", func(t *testing.T) {
		post, err := service.CreatePost("sarah", "no image", 0, []byte("#!/usr/bin/env python"))
		require.NoError(t, err)
		assert.False(t, post.HasImage())
	})
}

func TestEditPost(t *testing.T) {
	service, postRepo, _, _ := newTestPostService()

	post, err := service.CreatePost("sarah", "original", 0, nil)
	require.NoError(t, err)

	t.Run("author can edit", func(t *testing.T) {
		edited, err := service.EditPost("sarah", post.ID, "edited", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "edited", edited.Text)

		stored, err := postRepo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", stored.Text)
	})

	t.Run("publication time survives edits", func(t *testing.T) {
		before, err := postRepo.GetByID(post.ID)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		_, err = service.EditPost("sarah", post.ID, "edited again", 0, nil)
		require.NoError(t, err)

		after, err := postRepo.GetByID(post.ID)
		require.NoError(t, err)
		assert.True(t, before.PubDate.Equal(after.PubDate))
	})

	t.Run("non-author rejected without change", func(t *testing.T) {
		_, err := service.EditPost("conor", post.ID, "hijacked", 0, nil)
		assert.Equal(t, ErrNotAuthor, err)

		stored, err := postRepo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited again", stored.Text)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := service.EditPost("sarah", 9999, "text", 0, nil)
		assert.Equal(t, repositories.ErrNotFound, err)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := service.EditPost("sarah", post.ID, "", 0, nil)
		assert.ErrorIs(t, err, ErrInvalidPost)
	})

	t.Run("bad upload keeps existing image", func(t *testing.T) {
		withImage, err := service.CreatePost("sarah", "pic", 0, pngBytes(t))
		require.NoError(t, err)
		require.True(t, withImage.HasImage())

		edited, err := service.EditPost("sarah", withImage.ID, "pic edited", 0, []byte("not an image"))
		require.NoError(t, err)
		assert.Equal(t, withImage.ImageID, edited.ImageID)
	})
}

func TestGetPost(t *testing.T) {
	service, _, _, _ := newTestPostService()

	post, err := service.CreatePost("sarah", "hello", 0, nil)
	require.NoError(t, err)

	t.Run("found under its author", func(t *testing.T) {
		got, err := service.GetPost("sarah", post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
	})

	t.Run("not found under another author", func(t *testing.T) {
		_, err := service.GetPost("conor", post.ID)
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})
}

func groupTestFixture(t *testing.T, repo *mockGroupRepo) *models.Group {
	t.Helper()
	group := &models.Group{Title: "foo", Slug: "foo"}
	require.NoError(t, repo.Create(group))
	return group
}
