package blogservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	// ErrBadBlogID is returned by DeleteBlog when the id does not name a stored blog.
	ErrBadBlogID = errors.New("blog does not exist")
	// ErrNotOwner is returned when the caller is not the user that created the blog.
	ErrNotOwner = errors.New("only the creator can modify a blog")
)

func NewBlogService(m blogStore, owners BlogOwners, c *common.Cache) *BlogService {
	return &BlogService{m: m, owners: owners, c: c}
}

type CreateBlogRequest struct {
	Title  string
	Author string
	URL    string
	// Likes is the raw decoded JSON value, see parseLikes.
	Likes any
	Owner Owner
}

type UpdateBlogRequest struct {
	ID     string
	Title  string
	Author string
	URL    string
	Likes  any
	UserID string
}

// ListBlogs returns every blog with its owner. The result is never nil.
func (s *BlogService) ListBlogs(ctx context.Context) ([]Blog, error) {
	blogs, err := s.m.list(ctx)
	if err != nil {
		return nil, err
	}

	if blogs == nil {
		blogs = []Blog{}
	}

	return blogs, nil
}

// GetBlog returns a blog by its id.
func (s *BlogService) GetBlog(ctx context.Context, id string) (*Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		b := cached.(Blog)
		return &b, nil
	}

	b, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), *b)

	return b, nil
}

// CreateBlog stores a new blog owned by req.Owner and records it on the owner.
// Nothing is written when validation fails.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	// validated after sanitizing so that a field holding only a script element counts as blank
	title, author, url := sanitizeText(req.Title), sanitizeText(req.Author), sanitizeText(req.URL)

	v := common.NewValidator()
	validateTitle(v, title)
	validateURL(v, url)
	validateAuthor(v, author)
	validateID(v, req.Owner.ID, "user")
	likes := validateLikes(v, req.Likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	owner := req.Owner
	b := &Blog{
		Title:  title,
		Author: author,
		URL:    url,
		Likes:  likes,
		User:   &owner,
		UserID: owner.ID,
	}

	err := s.m.insert(ctx, b)
	if err != nil {
		return nil, err
	}

	// Not atomic with the insert: a failure here leaves the blog without an
	// entry in the owner's list.
	err = s.owners.AddBlog(ctx, owner.ID, b.ID)
	if err != nil {
		return nil, fmt.Errorf("record blog %s on user %s: %w", b.ID, owner.ID, err)
	}

	return b, nil
}

// UpdateBlog replaces title, author, url and likes. Only the owner may update.
func (s *BlogService) UpdateBlog(ctx context.Context, req *UpdateBlogRequest) (*Blog, error) {
	existing, err := s.m.getByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if existing.UserID == "" || existing.UserID != req.UserID {
		return nil, ErrNotOwner
	}

	title, author, url := sanitizeText(req.Title), sanitizeText(req.Author), sanitizeText(req.URL)

	v := common.NewValidator()
	validateTitle(v, title)
	validateURL(v, url)
	validateAuthor(v, author)
	likes := validateLikes(v, req.Likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	b := &Blog{
		ID:     existing.ID,
		Title:  title,
		Author: author,
		URL:    url,
		Likes:  likes,
		User:   existing.User,
		UserID: existing.UserID,
	}

	err = s.m.update(ctx, b)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(b.ID))

	return b, nil
}

// DeleteBlog removes a blog. The id is left in the owner's blog list.
func (s *BlogService) DeleteBlog(ctx context.Context, id, userID string) error {
	existing, err := s.m.getByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return ErrBadBlogID
		default:
			return err
		}
	}

	if existing.UserID == "" || existing.UserID != userID {
		return ErrNotOwner
	}

	err = s.m.delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return ErrBadBlogID
		default:
			return err
		}
	}

	s.c.Delete(common.CacheKeyBlog(id))

	return nil
}

// Stats computes the aggregates over the whole collection.
func (s *BlogService) Stats(ctx context.Context) (*Stats, error) {
	blogs, err := s.m.list(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Blogs:        len(blogs),
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}, nil
}
