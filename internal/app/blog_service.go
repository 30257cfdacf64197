package app

import (
	"context"
	"time"

	"gopherblog/internal/model"
)

type BlogStore interface {
	Create(ctx context.Context, blog *model.Blog) error
	Update(ctx context.Context, blog *model.Blog) (bool, error)
	GetByID(ctx context.Context, id uint) (*model.Blog, error)
	List(ctx context.Context, limit int) ([]model.Blog, error)
	DeleteByID(ctx context.Context, id uint) (bool, error)
}

type BlogService struct {
	blogs BlogStore
	now   func() time.Time
}

type BlogInput struct {
	Title   string
	Content string
	Author  string
}

func NewBlogService(blogs BlogStore) *BlogService {
	return &BlogService{blogs: blogs, now: time.Now}
}

func (s *BlogService) AddBlog(ctx context.Context, input BlogInput) (*model.Blog, error) {
	blog := &model.Blog{
		Title:   input.Title,
		Content: input.Content,
		Author:  input.Author,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) UpdateBlog(ctx context.Context, id uint, input BlogInput) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}

	now := s.now()
	blog.Title = input.Title
	blog.Content = input.Content
	blog.Author = input.Author
	blog.UpdatedAt = &now

	updated, err := s.blogs.Update(ctx, blog)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrBlogNotFound
	}
	return blog, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id uint) error {
	deleted, err := s.blogs.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBlogNotFound
	}
	return nil
}

func (s *BlogService) GetBlog(ctx context.Context, id uint) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	return blog, nil
}

const listBlogsLimit = 100

// ListBlogs returns the most recent posts, newest first.
func (s *BlogService) ListBlogs(ctx context.Context) ([]model.Blog, error) {
	return s.blogs.List(ctx, listBlogsLimit)
}
