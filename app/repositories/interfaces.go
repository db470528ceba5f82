package repositories

import "postcard/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	Update(post *models.Post) error
	ListAll() ([]*models.Post, error)
	ListByGroup(groupID int) ([]*models.Post, error)
	ListByAuthor(author string) ([]*models.Post, error)
	ListByAuthors(authors []string) ([]*models.Post, error)
	CountByAuthor(author string) (int, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByPost(postID int) ([]*models.Comment, error)
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(group *models.Group) error
	GetBySlug(slug string) (*models.Group, error)
	GetByID(id int) (*models.Group, error)
}

// FollowRepository defines the interface for follow edge data access.
// An edge is unique per (user, author) pair at the storage layer.
type FollowRepository interface {
	Create(follow *models.Follow) error
	Delete(user, author string) error
	Exists(user, author string) (bool, error)
	Authors(user string) ([]string, error)
}

// UserRepository defines the interface for user account data access
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
}

// MediaRepository defines the interface for uploaded image blobs
type MediaRepository interface {
	Save(blob *models.Media) error
	Get(id string) (*models.Media, error)
}
