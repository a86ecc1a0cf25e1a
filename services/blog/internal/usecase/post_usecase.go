package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blog-api/pkg/logger"
	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const viewDedupTTL = 24 * time.Hour

type PostInput struct {
	Title       *string
	Image       *string
	Description *string
	Tags        *string
	CategoryID  *string
	Status      *string
}

// MediaStore removes stored objects once nothing references them.
type MediaStore interface {
	DeleteFile(key string) error
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID string, input PostInput) (*entity.Post, error)
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*entity.Post, error)
	ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error)
	UpdatePost(ctx context.Context, userID, postID string, input PostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
	IncrementView(ctx context.Context, postID, viewerKey string) (bool, error)
	ToggleLike(ctx context.Context, userID, postID string) (bool, int64, error)
}

type postUseCase struct {
	postRepo     persistent.PostRepository
	userRepo     persistent.UserRepository
	categoryRepo persistent.CategoryRepository
	redisClient  *redis.Client
	media        MediaStore
	notifier     *Notifier
	logger       *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	categoryRepo persistent.CategoryRepository,
	redisClient *redis.Client,
	media MediaStore,
	notifier *Notifier,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		redisClient:  redisClient,
		media:        media,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, userID string, input PostInput) (*entity.Post, error) {
	if input.Title == nil || *input.Title == "" {
		return nil, ErrTitleRequired
	}

	post := &entity.Post{
		UserID: userID,
		Title:  *input.Title,
		Status: entity.StatusActive,
	}
	if err := uc.apply(ctx, post, input); err != nil {
		return nil, err
	}

	profile, err := uc.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, storeError(err, nil)
	}
	post.ProfileID = &profile.ID

	if err := uc.postRepo.Create(ctx, post); err != nil {
		uc.logger.Error("Failed to create post for user %s: %v", userID, err)
		return nil, storeError(err, nil)
	}

	uc.logger.Info("Post created: %s by %s", post.ID, userID)
	return post, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return post, nil
}

func (uc *postUseCase) GetPostBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	post, err := uc.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return post, nil
}

func (uc *postUseCase) ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return uc.postRepo.List(ctx, filter)
}

func (uc *postUseCase) UpdatePost(ctx context.Context, userID, postID string, input PostInput) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, nil)
	}
	if post.UserID != userID {
		return nil, ErrNotPostOwner
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		post.Title = *input.Title
	}
	if err := uc.apply(ctx, post, input); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		uc.logger.Error("Failed to update post %s: %v", postID, err)
		return nil, storeError(err, nil)
	}
	return post, nil
}

// apply copies the optional fields of input onto post, validating status and category.
func (uc *postUseCase) apply(ctx context.Context, post *entity.Post, input PostInput) error {
	assign(&post.Image, input.Image)
	assign(&post.Description, input.Description)
	assign(&post.Tags, input.Tags)

	if input.Status != nil {
		status := entity.PostStatus(*input.Status)
		if !status.Valid() {
			return ErrInvalidStatus
		}
		post.Status = status
	}

	if input.CategoryID != nil {
		if *input.CategoryID == "" {
			post.CategoryID = nil
		} else {
			if _, err := uc.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
				if errors.Is(storeError(err, nil), ErrNotFound) {
					return ErrInvalidCategory
				}
				return err
			}
			categoryID := *input.CategoryID
			post.CategoryID = &categoryID
		}
	}
	return nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return storeError(err, nil)
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return storeError(err, nil)
	}

	if uc.media != nil && post.Image != "" && !DefaultImage(post.Image) {
		go func(key string) {
			if err := uc.media.DeleteFile(key); err != nil {
				uc.logger.Warn("Failed to delete image %s of post %s: %v", key, postID, err)
			}
		}(post.Image)
	}

	uc.logger.Info("Post deleted: %s", postID)
	return nil
}

// IncrementView counts one view per viewer and day. It reports whether the
// counter moved.
func (uc *postUseCase) IncrementView(ctx context.Context, postID, viewerKey string) (bool, error) {
	key := fmt.Sprintf("post_view:%s:%s", postID, viewerKey)

	if uc.redisClient != nil {
		first, err := uc.redisClient.SetNX(ctx, key, 1, viewDedupTTL).Result()
		if err != nil {
			uc.logger.Warn("View de-duplication unavailable: %v", err)
		} else if !first {
			return false, nil
		}
	}

	if err := uc.postRepo.IncrementView(ctx, postID); err != nil {
		if uc.redisClient != nil {
			uc.redisClient.Del(ctx, key)
		}
		return false, storeError(err, nil)
	}
	return true, nil
}

func (uc *postUseCase) ToggleLike(ctx context.Context, userID, postID string) (bool, int64, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, 0, storeError(err, nil)
	}

	notify := true
	liked, err := uc.postRepo.ToggleLike(ctx, userID, postID)
	switch {
	case err == nil:
	case isDuplicateKey(err):
		// another request stored the same like first and notified for it
		liked, notify = true, false
	default:
		uc.logger.Error("Failed to toggle like on %s: %v", postID, err)
		return false, 0, storeError(err, nil)
	}

	count, err := uc.postRepo.LikeCount(ctx, postID)
	if err != nil {
		return liked, 0, storeError(err, nil)
	}

	if liked && notify {
		uc.notifier.Notify(ctx, entity.NotificationLike, post, userID)
	}
	return liked, count, nil
}

// DefaultImage reports whether the path is one of the bundled placeholder images.
func DefaultImage(path string) bool {
	return path == models.DefaultProfileImage || strings.HasPrefix(path, "default/")
}
