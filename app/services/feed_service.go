package services

import (
	"sort"

	"postcard/app/models"
	"postcard/app/repositories"
)

// PageSize is the fixed number of posts per feed page
const PageSize = 10

// Page is one slice of a feed: the posts for the requested page number plus
// the pagination metadata the templates need.
type Page struct {
	Posts      []*models.Post
	Number     int
	Count      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// FeedService builds the paginated feeds: home, group, profile and the
// followed-authors feed.
type FeedService struct {
	postRepo   repositories.PostRepository
	groupRepo  repositories.GroupRepository
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// HomePage returns the requested page of all posts, newest first
func (s *FeedService) HomePage(number int) (*Page, error) {
	posts, err := s.postRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return paginate(posts, number), nil
}

// GroupPage returns a group and the requested page of its posts.
// Returns repositories.ErrNotFound for an unknown slug.
func (s *FeedService) GroupPage(slug string, number int) (*models.Group, *Page, error) {
	group, err := s.groupRepo.GetBySlug(slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListByGroup(group.ID)
	if err != nil {
		return nil, nil, err
	}
	return group, paginate(posts, number), nil
}

// ProfilePage returns an author's account, the requested page of their posts,
// and their total post count. Returns repositories.ErrNotFound for an
// unknown username.
func (s *FeedService) ProfilePage(username string, number int) (*models.User, *Page, int, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, 0, err
	}

	posts, err := s.postRepo.ListByAuthor(username)
	if err != nil {
		return nil, nil, 0, err
	}
	return user, paginate(posts, number), len(posts), nil
}

// FollowPage returns the requested page of posts by the authors the given
// user follows.
func (s *FeedService) FollowPage(user string, number int) (*Page, error) {
	authors, err := s.followRepo.Authors(user)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthors(authors)
	if err != nil {
		return nil, err
	}
	return paginate(posts, number), nil
}

// paginate orders posts newest first and cuts out the requested page.
// Out-of-range page numbers clamp to the nearest valid page. Posts sharing a
// publication timestamp are ordered by descending ID so repeated calls see
// the same order.
func paginate(posts []*models.Post, number int) *Page {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].ID > posts[j].ID
	})

	count := len(posts)
	totalPages := (count + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * PageSize
	end := start + PageSize
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}

	return &Page{
		Posts:      posts[start:end],
		Number:     number,
		Count:      count,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
