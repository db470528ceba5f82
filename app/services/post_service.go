package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Supported raster image formats for post attachments
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"postcard/app/models"
	"postcard/app/repositories"
)

var (
	// ErrInvalidPost marks a validation failure the form should redisplay
	ErrInvalidPost = errors.New("invalid post")
	// ErrNotAuthor marks an edit attempt by someone other than the author
	ErrNotAuthor = errors.New("only the author can edit a post")
)

// PostService handles creating and editing posts
type PostService struct {
	postRepo  repositories.PostRepository
	groupRepo repositories.GroupRepository
	mediaRepo repositories.MediaRepository
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	mediaRepo repositories.MediaRepository,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		mediaRepo: mediaRepo,
	}
}

// CreatePost publishes a new post by author. The publication timestamp is
// set here and never changes afterwards. An upload that does not decode as
// a supported image is dropped without error.
func (s *PostService) CreatePost(author, text string, groupID int, upload []byte) (*models.Post, error) {
	if err := s.checkGroup(groupID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:    text,
		Author:  author,
		GroupID: groupID,
	}
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPost, err)
	}

	if err := s.attachImage(post, upload); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost updates a post's text, group and image. Only the author may edit;
// any other requester gets ErrNotAuthor. The publication timestamp is
// preserved. A new upload replaces the image only if it decodes; a bad
// upload leaves the attachment as it was.
func (s *PostService) EditPost(requester string, postID int, text string, groupID int, upload []byte) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	if post.Author != requester {
		return nil, ErrNotAuthor
	}

	if err := s.checkGroup(groupID); err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupID

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPost, err)
	}

	if err := s.attachImage(post, upload); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost retrieves a post by ID, scoped to the given author: a post that
// exists but belongs to someone else is ErrNotFound, matching the URL
// layout where posts live under their author's path.
func (s *PostService) GetPost(author string, postID int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.Author != author {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (s *PostService) checkGroup(groupID int) error {
	if groupID == 0 {
		return nil
	}
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		if err == repositories.ErrNotFound {
			return fmt.Errorf("%w: unknown group %d", ErrInvalidPost, groupID)
		}
		return err
	}
	return nil
}

// attachImage stores the upload and points the post at it when the upload
// decodes as a supported image. Anything else is silently ignored.
func (s *PostService) attachImage(post *models.Post, upload []byte) error {
	if len(upload) == 0 {
		return nil
	}

	_, format, err := image.Decode(bytes.NewReader(upload))
	if err != nil {
		return nil
	}

	blob := &models.Media{
		ContentType: "image/" + format,
		Data:        upload,
	}
	if err := s.mediaRepo.Save(blob); err != nil {
		return err
	}
	post.ImageID = blob.ID
	return nil
}
