package userservice

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory userStore used by the service tests.
type memStore struct {
	mu    sync.Mutex
	users []*User
	// blogs lets list expand blog ids the way the mongo model does
	blogs map[string]BlogSummary
}

func newMemStore() *memStore {
	return &memStore{blogs: make(map[string]BlogSummary)}
}

func (m *memStore) insert(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == u.Username {
			return ErrDuplicateUsername
		}
	}

	u.ID = primitive.NewObjectID().Hex()
	u.BlogIDs = []string{}
	u.Blogs = []BlogSummary{}

	stored := *u
	m.users = append(m.users, &stored)

	return nil
}

func (m *memStore) getByID(ctx context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			c := *u
			c.BlogIDs = append([]string{}, u.BlogIDs...)
			return &c, nil
		}
	}

	return nil, ErrNotFound
}

func (m *memStore) getByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}

	return nil, ErrNotFound
}

func (m *memStore) list(ctx context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		c := *u
		c.Blogs = []BlogSummary{}
		for _, id := range u.BlogIDs {
			if s, ok := m.blogs[id]; ok {
				c.Blogs = append(c.Blogs, s)
			}
		}
		users = append(users, c)
	}

	return users, nil
}

func (m *memStore) addBlog(ctx context.Context, userID, blogID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == userID {
			u.BlogIDs = append(u.BlogIDs, blogID)
			return nil
		}
	}

	return ErrNotFound
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.users)
}
