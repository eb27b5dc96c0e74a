package blogservice

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory blogStore used by the service tests.
type memStore struct {
	mu     sync.Mutex
	blogs  []Blog
	owners map[string]Owner
}

func newMemStore() *memStore {
	return &memStore{owners: make(map[string]Owner)}
}

func (m *memStore) insert(ctx context.Context, b *Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b.ID = primitive.NewObjectID().Hex()
	stored := *b
	stored.User = nil
	m.blogs = append(m.blogs, stored)

	return nil
}

func (m *memStore) withOwner(b Blog) Blog {
	if o, ok := m.owners[b.UserID]; ok {
		b.User = &o
	}
	return b
}

func (m *memStore) getByID(ctx context.Context, id string) (*Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.blogs {
		if b.ID == id {
			found := m.withOwner(b)
			return &found, nil
		}
	}

	return nil, ErrRecordNotFound
}

func (m *memStore) list(ctx context.Context) ([]Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	blogs := make([]Blog, 0, len(m.blogs))
	for _, b := range m.blogs {
		blogs = append(blogs, m.withOwner(b))
	}

	return blogs, nil
}

func (m *memStore) update(ctx context.Context, b *Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.blogs {
		if m.blogs[i].ID == b.ID {
			m.blogs[i].Title = b.Title
			m.blogs[i].Author = b.Author
			m.blogs[i].URL = b.URL
			m.blogs[i].Likes = b.Likes
			return nil
		}
	}

	return ErrRecordNotFound
}

func (m *memStore) delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.blogs {
		if m.blogs[i].ID == id {
			m.blogs = append(m.blogs[:i], m.blogs[i+1:]...)
			return nil
		}
	}

	return ErrRecordNotFound
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.blogs)
}

// memOwners records AddBlog calls per user.
type memOwners struct {
	mu    sync.Mutex
	blogs map[string][]string
	err   error
}

func newMemOwners() *memOwners {
	return &memOwners{blogs: make(map[string][]string)}
}

func (o *memOwners) AddBlog(ctx context.Context, userID, blogID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.err != nil {
		return o.err
	}

	o.blogs[userID] = append(o.blogs[userID], blogID)

	return nil
}

var errOwnerStore = errors.New("owner store unavailable")
