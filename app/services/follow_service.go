package services

import (
	"errors"

	"postcard/app/models"
	"postcard/app/repositories"
)

// ErrSelfFollow marks an attempt to follow oneself
var ErrSelfFollow = errors.New("cannot follow yourself")

// FollowService manages the directed follow graph. Follow and Unfollow are
// idempotent: repeating either changes nothing.
type FollowService struct {
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the edge user -> author. Following yourself is rejected;
// following someone already followed is a no-op. The author must exist.
func (s *FollowService) Follow(user, author string) error {
	if user == author {
		return ErrSelfFollow
	}

	if _, err := s.userRepo.GetByUsername(author); err != nil {
		return err
	}

	exists, err := s.followRepo.Exists(user, author)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	follow := &models.Follow{User: user, Author: author}
	if err := follow.Validate(); err != nil {
		return err
	}
	return s.followRepo.Create(follow)
}

// Unfollow removes the edge user -> author if present. The author must exist.
func (s *FollowService) Unfollow(user, author string) error {
	if _, err := s.userRepo.GetByUsername(author); err != nil {
		return err
	}
	return s.followRepo.Delete(user, author)
}

// IsFollowing reports whether user currently follows author
func (s *FollowService) IsFollowing(user, author string) (bool, error) {
	return s.followRepo.Exists(user, author)
}

// FeedAuthors returns the set of authors user follows
func (s *FollowService) FeedAuthors(user string) ([]string, error) {
	return s.followRepo.Authors(user)
}
