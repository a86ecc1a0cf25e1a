package persistent

import (
	"context"
	"errors"

	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
	List(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
	IncrementView(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, userID, postID string) (bool, error)
	LikeCount(ctx context.Context, postID string) (int64, error)
	LikeCounts(ctx context.Context, postIDs []string) (map[string]int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	return r.getBy(ctx, "posts.id = ?", id)
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	return r.getBy(ctx, "posts.slug = ?", slug)
}

func (r *postRepository) getBy(ctx context.Context, cond, value string) (*entity.Post, error) {
	var postModel models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Profile").
		Where(cond, value).
		First(&postModel).Error
	if err != nil {
		return nil, err
	}

	post := ToPostEntity(&postModel)
	if post.Likes, err = r.LikeCount(ctx, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepository) List(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{}).Order("posts.created_at DESC")

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Status != "" {
		query = query.Where("posts.status = ?", string(filter.Status))
	}
	if filter.UserID != "" {
		query = query.Where("posts.user_id = ?", filter.UserID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var postModels []models.Post
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := toPostEntities(postModels)
	if len(posts) == 0 {
		return posts, nil
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := r.LikeCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		p.Likes = counts[p.ID]
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	result := r.db.WithContext(ctx).Omit(clause.Associations).Model(postModel).
		Select("title", "image", "description", "tags", "category_id", "status", "updated_at").
		Updates(postModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	post.UpdatedAt = postModel.UpdatedAt
	return nil
}

// Delete removes the post with its comments, likes, bookmarks and notifications.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deletePostDependants(tx, []string{id}); err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *postRepository) IncrementView(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view", gorm.Expr("view + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleLike adds the like when absent and removes it otherwise.
// It reports whether the post is liked afterwards.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PostLike
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case err == nil:
			liked = false
			return tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			// a concurrent like of the same pair leaves the row in place
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.PostLike{PostID: postID, UserID: userID}).Error
		default:
			return err
		}
	})
	return liked, err
}

func (r *postRepository) LikeCount(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *postRepository) LikeCounts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
