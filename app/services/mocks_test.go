package services

import (
	"fmt"
	"sort"

	"postcard/app/models"
	"postcard/app/repositories"
)

type mockPostRepo struct {
	posts  map[int]*models.Post
	nextID int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[int]*models.Post), nextID: 1}
}

func (m *mockPostRepo) Create(post *models.Post) error {
	post.ID = m.nextID
	m.nextID++
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *mockPostRepo) GetByID(id int) (*models.Post, error) {
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *mockPostRepo) Update(post *models.Post) error {
	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *mockPostRepo) list(match func(*models.Post) bool) []*models.Post {
	var posts []*models.Post
	for _, post := range m.posts {
		if match(post) {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	// Map iteration order is random; tests need a stable base order
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts
}

func (m *mockPostRepo) ListAll() ([]*models.Post, error) {
	return m.list(func(*models.Post) bool { return true }), nil
}

func (m *mockPostRepo) ListByGroup(groupID int) ([]*models.Post, error) {
	return m.list(func(p *models.Post) bool { return p.GroupID == groupID }), nil
}

func (m *mockPostRepo) ListByAuthor(author string) ([]*models.Post, error) {
	return m.list(func(p *models.Post) bool { return p.Author == author }), nil
}

func (m *mockPostRepo) ListByAuthors(authors []string) ([]*models.Post, error) {
	set := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		set[a] = struct{}{}
	}
	return m.list(func(p *models.Post) bool {
		_, ok := set[p.Author]
		return ok
	}), nil
}

func (m *mockPostRepo) CountByAuthor(author string) (int, error) {
	return len(m.list(func(p *models.Post) bool { return p.Author == author })), nil
}

type mockCommentRepo struct {
	comments map[int]*models.Comment
	nextID   int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int]*models.Comment), nextID: 1}
}

func (m *mockCommentRepo) Create(comment *models.Comment) error {
	comment.ID = m.nextID
	m.nextID++
	copied := *comment
	m.comments[comment.ID] = &copied
	return nil
}

func (m *mockCommentRepo) ListByPost(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

type mockGroupRepo struct {
	groups map[string]*models.Group
	nextID int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*models.Group), nextID: 1}
}

func (m *mockGroupRepo) Create(group *models.Group) error {
	if _, exists := m.groups[group.Slug]; exists {
		return repositories.ErrExists
	}
	group.ID = m.nextID
	m.nextID++
	m.groups[group.Slug] = group
	return nil
}

func (m *mockGroupRepo) GetBySlug(slug string) (*models.Group, error) {
	group, exists := m.groups[slug]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return group, nil
}

func (m *mockGroupRepo) GetByID(id int) (*models.Group, error) {
	for _, group := range m.groups {
		if group.ID == id {
			return group, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type mockFollowRepo struct {
	edges map[string]map[string]bool
}

func newMockFollowRepo() *mockFollowRepo {
	return &mockFollowRepo{edges: make(map[string]map[string]bool)}
}

func (m *mockFollowRepo) Create(follow *models.Follow) error {
	if m.edges[follow.User] == nil {
		m.edges[follow.User] = make(map[string]bool)
	}
	m.edges[follow.User][follow.Author] = true
	return nil
}

func (m *mockFollowRepo) Delete(user, author string) error {
	delete(m.edges[user], author)
	return nil
}

func (m *mockFollowRepo) Exists(user, author string) (bool, error) {
	return m.edges[user][author], nil
}

func (m *mockFollowRepo) Authors(user string) ([]string, error) {
	var authors []string
	for author := range m.edges[user] {
		authors = append(authors, author)
	}
	sort.Strings(authors)
	return authors, nil
}

type mockUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (m *mockUserRepo) Create(user *models.User) error {
	if _, exists := m.users[user.Username]; exists {
		return repositories.ErrExists
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByUsername(username string) (*models.User, error) {
	user, exists := m.users[username]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

type mockMediaRepo struct {
	blobs  map[string]*models.Media
	nextID int
}

func newMockMediaRepo() *mockMediaRepo {
	return &mockMediaRepo{blobs: make(map[string]*models.Media), nextID: 1}
}

func (m *mockMediaRepo) Save(blob *models.Media) error {
	if blob.ID == "" {
		blob.ID = fmt.Sprintf("blob-%d", m.nextID)
		m.nextID++
	}
	m.blobs[blob.ID] = blob
	return nil
}

func (m *mockMediaRepo) Get(id string) (*models.Media, error) {
	blob, exists := m.blobs[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return blob, nil
}
