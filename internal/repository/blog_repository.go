package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gopherblog/internal/model"
)

// BlogRepository is bound to the blog database only.
type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return fmt.Errorf("create blog failed: %w", err)
	}
	return nil
}

// Update rewrites the editable columns of an existing post. It never inserts,
// so a post deleted meanwhile stays deleted and false is returned.
func (r *BlogRepository) Update(ctx context.Context, blog *model.Blog) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Blog{}).
		Where("id = ?", blog.ID).
		Updates(map[string]interface{}{
			"title":      blog.Title,
			"content":    blog.Content,
			"author":     blog.Author,
			"updated_at": blog.UpdatedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("update blog failed: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id uint) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query blog by id failed: %w", err)
	}
	return &blog, nil
}

func (r *BlogRepository) List(ctx context.Context, limit int) ([]model.Blog, error) {
	var blogs []model.Blog
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("list blogs failed: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) DeleteByID(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Blog{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete blog failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
