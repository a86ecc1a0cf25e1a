package persistent

import (
	"context"

	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	PostCount(ctx context.Context, categoryID string) (int64, error)
	PostCounts(ctx context.Context) (map[string]int64, error)
	Posts(ctx context.Context, categoryIDs []string, withAuthor bool) ([]*entity.Post, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := ToCategoryModel(category)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(categoryModel).Error; err != nil {
		return err
	}
	*category = *ToCategoryEntity(categoryModel)
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var categoryModel models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel).Error; err != nil {
		return nil, err
	}
	return ToCategoryEntity(&categoryModel), nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var categoryModel models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&categoryModel).Error; err != nil {
		return nil, err
	}
	return ToCategoryEntity(&categoryModel), nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []models.Category
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = ToCategoryEntity(&categoryModels[i])
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := ToCategoryModel(category)
	result := r.db.WithContext(ctx).Omit(clause.Associations).Model(categoryModel).
		Select("title", "image", "slug").
		Updates(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	*category = *ToCategoryEntity(categoryModel)
	return nil
}

// Delete detaches the category's posts before removing it.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *categoryRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) PostCount(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *categoryRepository) PostCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		CategoryID string
		Count      int64
	}
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

// Posts loads the posts of the given categories, newest first.
func (r *categoryRepository) Posts(ctx context.Context, categoryIDs []string, withAuthor bool) ([]*entity.Post, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Where("category_id IN ?", categoryIDs).Order("created_at DESC")
	if withAuthor {
		query = query.Preload("User").Preload("Profile")
	}

	var postModels []models.Post
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

func toPostEntities(postModels []models.Post) []*entity.Post {
	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts
}
