package services

import (
	"errors"
	"fmt"
	"sort"

	"postcard/app/models"
	"postcard/app/repositories"
)

// ErrInvalidComment marks a validation failure the form should redisplay
var ErrInvalidComment = errors.New("invalid comment")

// CommentService handles adding and listing comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment by author to the given post. Comments are
// immutable once created.
func (s *CommentService) AddComment(author string, postID int, text string) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		Author: author,
		Text:   text,
	}
	comment.BeforeCreate()

	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidComment, err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListPostComments returns a post's comments, oldest first
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}
