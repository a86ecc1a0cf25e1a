package persistent

import (
	"context"

	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepository interface {
	CreateComment(ctx context.Context, comment *entity.Comment) error
	GetComment(ctx context.Context, id string) (*entity.Comment, error)
	ListComments(ctx context.Context, postID string) ([]*entity.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	CreateBookmark(ctx context.Context, bookmark *entity.Bookmark) error
	GetBookmark(ctx context.Context, id string) (*entity.Bookmark, error)
	ListBookmarks(ctx context.Context, userID string) ([]*entity.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) error
	CreateNotification(ctx context.Context, notification *entity.Notification) error
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *engagementRepository) GetComment(ctx context.Context, id string) (*entity.Comment, error) {
	var commentModel models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

// ListComments returns every comment of the post, oldest first.
func (r *engagementRepository) ListComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	var commentModels []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&commentModels).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

// DeleteComment removes the comment and every reply below it.
func (r *engagementRepository) DeleteComment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []string{id}
		frontier := []string{id}
		for len(frontier) > 0 {
			var children []string
			if err := tx.Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}

		result := tx.Where("id IN ?", ids).Delete(&models.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *engagementRepository) CreateBookmark(ctx context.Context, bookmark *entity.Bookmark) error {
	bookmarkModel := &models.Bookmark{
		ID:     bookmark.ID,
		UserID: bookmark.UserID,
		PostID: bookmark.PostID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(bookmarkModel).Error; err != nil {
		return err
	}
	bookmark.ID = bookmarkModel.ID
	bookmark.CreatedAt = bookmarkModel.CreatedAt
	return nil
}

func (r *engagementRepository) GetBookmark(ctx context.Context, id string) (*entity.Bookmark, error) {
	var bookmarkModel models.Bookmark
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&bookmarkModel).Error; err != nil {
		return nil, err
	}
	return ToBookmarkEntity(&bookmarkModel), nil
}

func (r *engagementRepository) ListBookmarks(ctx context.Context, userID string) ([]*entity.Bookmark, error) {
	var bookmarkModels []models.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Post").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarkModels).Error
	if err != nil {
		return nil, err
	}

	bookmarks := make([]*entity.Bookmark, len(bookmarkModels))
	for i := range bookmarkModels {
		bookmarks[i] = ToBookmarkEntity(&bookmarkModels[i])
	}
	return bookmarks, nil
}

func (r *engagementRepository) DeleteBookmark(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *engagementRepository) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	notificationModel := ToNotificationModel(notification)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(notificationModel).Error; err != nil {
		return err
	}
	*notification = *ToNotificationEntity(notificationModel)
	return nil
}
