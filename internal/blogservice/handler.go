package blogservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/bloglist/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	UserID string `json:"user_id"`
}

type UpdateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// CreateBlog creates a new blog post owned by the given user. An absent likes
// value defaults to zero.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateBlog(v, req.Title, req.URL, req.Likes)
	validateID(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
		UserID: req.UserID,
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs())

	// Re-read for the joined owner view.
	return s.m.getBlogById(ctx, blog.ID)
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		if blog, ok := cached.(*Blog); ok {
			return blog, nil
		}
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

// UpdateBlog replaces title, author, url and likes of the blog with the given
// id. No ownership check applies to updates.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateBlog(v, req.Title, req.URL, req.Likes)
	validateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	}

	if err := s.m.updateBlog(ctx, blog); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(id))
	s.c.Delete(common.CacheKeyBlogs())

	return s.m.getBlogById(ctx, id)
}

// DeleteBlog removes a blog post by id. The caller is responsible for the
// ownership check before invoking this.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deleteBlog(ctx, id); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(id))
	s.c.Delete(common.CacheKeyBlogs())

	return nil
}

// GetBlogs returns all blog posts with the reduced owner view.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogs()); ok {
		if blogs, ok := cached.([]Blog); ok {
			return blogs, nil
		}
	}

	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogs(), blogs)

	return blogs, nil
}

// Stats summarizes the whole blog list using the aggregation helpers.
func (s *BlogService) Stats(ctx context.Context) (*Stats, error) {
	blogs, err := s.GetBlogs(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Blogs:      len(blogs),
		TotalLikes: TotalLikes(blogs),
	}

	if favorite, ok := FavoriteBlog(blogs); ok {
		stats.Favorite = &favorite
	}
	if top, ok := MostBlogs(blogs); ok {
		stats.MostBlogs = &top
	}
	if top, ok := MostLikes(blogs); ok {
		stats.MostLikes = &top
	}

	return stats, nil
}
