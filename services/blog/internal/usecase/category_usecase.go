package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"blog-api/pkg/logger"
	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const (
	CategoryCacheKey = "categories:all"
	categoryCacheTTL = 10 * time.Minute

	// MaxDepth is the deepest nesting a category representation supports.
	MaxDepth = 3
)

var ErrTitleRequired = errors.New("title is required")

type CategoryInput struct {
	Title *string
	Image *string
	Slug  *string
}

type CategoryUseCase interface {
	CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error)
	ListCategories(ctx context.Context, depth int) ([]*entity.CategoryDetail, error)
	GetCategory(ctx context.Context, id string, depth int) (*entity.CategoryDetail, error)
	GetCategoryBySlug(ctx context.Context, slug string, depth int) (*entity.CategoryDetail, error)
	UpdateCategory(ctx context.Context, id string, input CategoryInput, partial bool, depth int) (*entity.CategoryDetail, error)
	DeleteCategory(ctx context.Context, id string) error
	PostCount(ctx context.Context, id string) (int64, error)
}

type categoryUseCase struct {
	categoryRepo persistent.CategoryRepository
	postRepo     persistent.PostRepository
	redisClient  *redis.Client
	logger       *logger.Logger
}

func NewCategoryUseCase(
	categoryRepo persistent.CategoryRepository,
	postRepo persistent.PostRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
		redisClient:  redisClient,
		logger:       logger,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	if input.Title == nil || *input.Title == "" {
		return nil, ErrTitleRequired
	}

	category := &entity.Category{Title: *input.Title}
	assign(&category.Image, input.Image)
	assign(&category.Slug, input.Slug)
	if category.Slug == "" {
		category.Slug = models.Slugify(category.Title)
	}

	if err := uc.checkSlug(ctx, category.Slug, ""); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		uc.logger.Error("Failed to create category %q: %v", category.Title, err)
		return nil, storeError(err, ErrSlugTaken)
	}

	uc.invalidateCache(ctx)
	return category, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, depth int) ([]*entity.CategoryDetail, error) {
	categories, err := uc.cachedCategories(ctx)
	if err != nil {
		return nil, err
	}
	return uc.details(ctx, categories, depth)
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string, depth int) (*entity.CategoryDetail, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return uc.detail(ctx, category, depth)
}

func (uc *categoryUseCase) GetCategoryBySlug(ctx context.Context, slug string, depth int) (*entity.CategoryDetail, error) {
	category, err := uc.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return uc.detail(ctx, category, depth)
}

// UpdateCategory replaces the category (partial=false) or patches the given
// fields. An empty slug is derived again from the title.
func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id string, input CategoryInput, partial bool, depth int) (*entity.CategoryDetail, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, nil)
	}

	if partial {
		assign(&category.Title, input.Title)
		assign(&category.Image, input.Image)
		assign(&category.Slug, input.Slug)
	} else {
		if input.Title == nil {
			return nil, ErrTitleRequired
		}
		category.Title = *input.Title
		category.Image = ""
		category.Slug = ""
		assign(&category.Image, input.Image)
		assign(&category.Slug, input.Slug)
	}

	if category.Title == "" {
		return nil, ErrTitleRequired
	}
	if category.Slug == "" {
		category.Slug = models.Slugify(category.Title)
	}
	if err := uc.checkSlug(ctx, category.Slug, id); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		uc.logger.Error("Failed to update category %s: %v", id, err)
		return nil, storeError(err, ErrSlugTaken)
	}

	uc.invalidateCache(ctx)
	return uc.detail(ctx, category, depth)
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		return storeError(err, nil)
	}
	uc.invalidateCache(ctx)
	return nil
}

func (uc *categoryUseCase) PostCount(ctx context.Context, id string) (int64, error) {
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		return 0, storeError(err, nil)
	}
	return uc.categoryRepo.PostCount(ctx, id)
}

func (uc *categoryUseCase) checkSlug(ctx context.Context, slug, excludeID string) error {
	taken, err := uc.categoryRepo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return nil
}

func (uc *categoryUseCase) detail(ctx context.Context, category *entity.Category, depth int) (*entity.CategoryDetail, error) {
	details, err := uc.details(ctx, []*entity.Category{category}, depth)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// details attaches post counts and, for depth >= 1, the posts of each category.
func (uc *categoryUseCase) details(ctx context.Context, categories []*entity.Category, depth int) ([]*entity.CategoryDetail, error) {
	counts, err := uc.categoryRepo.PostCounts(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]*entity.CategoryDetail, len(categories))
	byID := make(map[string]*entity.CategoryDetail, len(categories))
	ids := make([]string, len(categories))
	for i, c := range categories {
		details[i] = &entity.CategoryDetail{Category: c, PostCount: counts[c.ID]}
		byID[c.ID] = details[i]
		ids[i] = c.ID
	}

	if depth < 1 || len(categories) == 0 {
		return details, nil
	}

	posts, err := uc.categoryRepo.Posts(ctx, ids, depth >= 2)
	if err != nil {
		return nil, err
	}

	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	likes, err := uc.postRepo.LikeCounts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	for _, d := range details {
		d.Posts = []*entity.Post{}
	}
	for _, p := range posts {
		p.Likes = likes[p.ID]
		if p.CategoryID == nil {
			continue
		}
		if d, ok := byID[*p.CategoryID]; ok {
			d.Posts = append(d.Posts, p)
		}
	}
	return details, nil
}

func (uc *categoryUseCase) cachedCategories(ctx context.Context) ([]*entity.Category, error) {
	if uc.redisClient != nil {
		cached, err := uc.redisClient.Get(ctx, CategoryCacheKey).Bytes()
		if err == nil {
			var categories []*entity.Category
			if err := json.Unmarshal(cached, &categories); err == nil {
				return categories, nil
			}
		} else if err != redis.Nil {
			uc.logger.Warn("Failed to read category cache: %v", err)
		}
	}

	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := uc.redisClient.Set(ctx, CategoryCacheKey, data, categoryCacheTTL).Err(); err != nil {
				uc.logger.Warn("Failed to write category cache: %v", err)
			}
		}
	}
	return categories, nil
}

func (uc *categoryUseCase) invalidateCache(ctx context.Context) {
	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Del(ctx, CategoryCacheKey).Err(); err != nil {
		uc.logger.Warn("Failed to invalidate category cache: %v", err)
	}
}
