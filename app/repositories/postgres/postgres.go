// Package postgres provides a PostgreSQL-backed implementation of the
// repository interfaces, selected with the "postgres" storage driver.
package postgres

import (
	"context"
	"errors"

	"postcard/app/models"
	"postcard/app/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash BYTEA
);

CREATE TABLE IF NOT EXISTS groups (
	id          SERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS posts (
	id       SERIAL PRIMARY KEY,
	body     TEXT NOT NULL,
	author   TEXT NOT NULL,
	group_id INTEGER NOT NULL DEFAULT 0,
	image_id TEXT NOT NULL DEFAULT '',
	pub_date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
	id         SERIAL PRIMARY KEY,
	post_id    INTEGER NOT NULL REFERENCES posts (id),
	author     TEXT NOT NULL,
	body       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS follows (
	user_name   TEXT NOT NULL,
	author_name TEXT NOT NULL,
	PRIMARY KEY (user_name, author_name)
);

CREATE TABLE IF NOT EXISTS media (
	id           TEXT PRIMARY KEY,
	content_type TEXT NOT NULL,
	data         BYTEA NOT NULL
);
`

// Store holds the shared connection pool behind the per-entity repositories
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool and ensures the schema exists
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool
func (s *Store) Close() {
	s.pool.Close()
}

// Posts returns the PostRepository backed by this store
func (s *Store) Posts() *PostRepository { return &PostRepository{pool: s.pool} }

// Comments returns the CommentRepository backed by this store
func (s *Store) Comments() *CommentRepository { return &CommentRepository{pool: s.pool} }

// Groups returns the GroupRepository backed by this store
func (s *Store) Groups() *GroupRepository { return &GroupRepository{pool: s.pool} }

// Follows returns the FollowRepository backed by this store
func (s *Store) Follows() *FollowRepository { return &FollowRepository{pool: s.pool} }

// Users returns the UserRepository backed by this store
func (s *Store) Users() *UserRepository { return &UserRepository{pool: s.pool} }

// Media returns the MediaRepository backed by this store
func (s *Store) Media() *MediaRepository { return &MediaRepository{pool: s.pool} }

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repositories.ErrNotFound
	}
	return err
}

// PostRepository implements repositories.PostRepository on PostgreSQL
type PostRepository struct {
	pool *pgxpool.Pool
}

const postColumns = "id, body, author, group_id, image_id, pub_date"

func scanPosts(rows pgx.Rows) ([]*models.Post, error) {
	defer rows.Close()
	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Text, &p.Author, &p.GroupID, &p.ImageID, &p.PubDate); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Create(post *models.Post) error {
	return r.pool.QueryRow(context.Background(),
		`INSERT INTO posts (body, author, group_id, image_id, pub_date)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		post.Text, post.Author, post.GroupID, post.ImageID, post.PubDate,
	).Scan(&post.ID)
}

func (r *PostRepository) GetByID(id int) (*models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(context.Background(),
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id,
	).Scan(&p.ID, &p.Text, &p.Author, &p.GroupID, &p.ImageID, &p.PubDate)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *PostRepository) Update(post *models.Post) error {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE posts SET body = $1, group_id = $2, image_id = $3 WHERE id = $4`,
		post.Text, post.GroupID, post.ImageID, post.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PostRepository) ListAll() ([]*models.Post, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+postColumns+` FROM posts`)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (r *PostRepository) ListByGroup(groupID int) ([]*models.Post, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+postColumns+` FROM posts WHERE group_id = $1`, groupID)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (r *PostRepository) ListByAuthor(author string) ([]*models.Post, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+postColumns+` FROM posts WHERE author = $1`, author)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (r *PostRepository) ListByAuthors(authors []string) ([]*models.Post, error) {
	if len(authors) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+postColumns+` FROM posts WHERE author = ANY($1)`, authors)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (r *PostRepository) CountByAuthor(author string) (int, error) {
	var count int
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM posts WHERE author = $1`, author).Scan(&count)
	return count, err
}

// CommentRepository implements repositories.CommentRepository on PostgreSQL
type CommentRepository struct {
	pool *pgxpool.Pool
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.pool.QueryRow(context.Background(),
		`INSERT INTO comments (post_id, author, body, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		comment.PostID, comment.Author, comment.Text, comment.CreatedAt,
	).Scan(&comment.ID)
}

func (r *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, post_id, author, body, created_at FROM comments
		 WHERE post_id = $1 ORDER BY id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// GroupRepository implements repositories.GroupRepository on PostgreSQL
type GroupRepository struct {
	pool *pgxpool.Pool
}

func (r *GroupRepository) Create(group *models.Group) error {
	err := r.pool.QueryRow(context.Background(),
		`INSERT INTO groups (title, slug, description) VALUES ($1, $2, $3)
		 ON CONFLICT (slug) DO NOTHING RETURNING id`,
		group.Title, group.Slug, group.Description,
	).Scan(&group.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return repositories.ErrExists
	}
	return err
}

func (r *GroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var g models.Group
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, title, slug, description FROM groups WHERE slug = $1`, slug,
	).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		return nil, mapErr(err)
	}
	return &g, nil
}

func (r *GroupRepository) GetByID(id int) (*models.Group, error) {
	var g models.Group
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, title, slug, description FROM groups WHERE id = $1`, id,
	).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		return nil, mapErr(err)
	}
	return &g, nil
}

// FollowRepository implements repositories.FollowRepository on PostgreSQL.
// The (user_name, author_name) primary key rules out duplicate edges even
// under concurrent inserts.
type FollowRepository struct {
	pool *pgxpool.Pool
}

func (r *FollowRepository) Create(follow *models.Follow) error {
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO follows (user_name, author_name) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		follow.User, follow.Author)
	return err
}

func (r *FollowRepository) Delete(user, author string) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM follows WHERE user_name = $1 AND author_name = $2`,
		user, author)
	return err
}

func (r *FollowRepository) Exists(user, author string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM follows WHERE user_name = $1 AND author_name = $2)`,
		user, author).Scan(&exists)
	return exists, err
}

func (r *FollowRepository) Authors(user string) ([]string, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT author_name FROM follows WHERE user_name = $1`, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []string
	for rows.Next() {
		var author string
		if err := rows.Scan(&author); err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

// UserRepository implements repositories.UserRepository on PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

func (r *UserRepository) Create(user *models.User) error {
	err := r.pool.QueryRow(context.Background(),
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
		 ON CONFLICT (username) DO NOTHING RETURNING id`,
		user.Username, user.PasswordHash,
	).Scan(&user.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return repositories.ErrExists
	}
	return err
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, username, password_hash FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// MediaRepository implements repositories.MediaRepository on PostgreSQL
type MediaRepository struct {
	pool *pgxpool.Pool
}

func (r *MediaRepository) Save(blob *models.Media) error {
	if blob.ID == "" {
		blob.ID = newMediaID()
	}
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO media (id, content_type, data) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET content_type = $2, data = $3`,
		blob.ID, blob.ContentType, blob.Data)
	return err
}

func (r *MediaRepository) Get(id string) (*models.Media, error) {
	var m models.Media
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, content_type, data FROM media WHERE id = $1`, id,
	).Scan(&m.ID, &m.ContentType, &m.Data)
	if err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}
