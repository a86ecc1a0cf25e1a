package usecase

import (
	"context"
	"errors"

	"blog-api/pkg/logger"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/repo/persistent"
)

type CommentInput struct {
	Name     string
	Email    string
	Body     string
	ParentID *string
}

type EngagementUseCase interface {
	AddComment(ctx context.Context, postID string, input CommentInput) (*entity.Comment, error)
	CommentTree(ctx context.Context, postID string) ([]*entity.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID string) error
	AddBookmark(ctx context.Context, userID, postID string) (*entity.Bookmark, error)
	ListBookmarks(ctx context.Context, userID string) ([]*entity.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, bookmarkID string) error
}

type engagementUseCase struct {
	engagementRepo persistent.EngagementRepository
	postRepo       persistent.PostRepository
	notifier       *Notifier
	logger         *logger.Logger
}

func NewEngagementUseCase(
	engagementRepo persistent.EngagementRepository,
	postRepo persistent.PostRepository,
	notifier *Notifier,
	logger *logger.Logger,
) EngagementUseCase {
	return &engagementUseCase{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

// AddComment stores a comment or a reply. A reply's parent must already
// exist on the same post, which also rules out cycles.
func (uc *engagementUseCase) AddComment(ctx context.Context, postID string, input CommentInput) (*entity.Comment, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	comment := &entity.Comment{
		PostID: postID,
		Name:   input.Name,
		Email:  input.Email,
		Body:   input.Body,
	}

	if input.ParentID != nil && *input.ParentID != "" {
		parent, err := uc.engagementRepo.GetComment(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(storeError(err, nil), ErrNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrParentPostMismatch
		}
		parentID := parent.ID
		comment.ParentID = &parentID
	}

	if err := uc.engagementRepo.CreateComment(ctx, comment); err != nil {
		uc.logger.Error("Failed to add comment to post %s: %v", postID, err)
		return nil, storeError(err, nil)
	}

	comment.Replies = []*entity.Comment{}
	uc.notifier.Notify(ctx, entity.NotificationComment, post, "")
	return comment, nil
}

func (uc *engagementUseCase) CommentTree(ctx context.Context, postID string) ([]*entity.Comment, error) {
	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, storeError(err, nil)
	}

	comments, err := uc.engagementRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(comments), nil
}

// DeleteComment lets the post author moderate comments on their post.
func (uc *engagementUseCase) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := uc.engagementRepo.GetComment(ctx, commentID)
	if err != nil {
		return storeError(err, nil)
	}

	post, err := uc.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return storeError(err, nil)
	}
	if post.UserID != userID {
		return ErrForbidden
	}

	return storeError(uc.engagementRepo.DeleteComment(ctx, commentID), nil)
}

func (uc *engagementUseCase) AddBookmark(ctx context.Context, userID, postID string) (*entity.Bookmark, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	bookmark := &entity.Bookmark{UserID: userID, PostID: postID}
	if err := uc.engagementRepo.CreateBookmark(ctx, bookmark); err != nil {
		uc.logger.Error("Failed to bookmark post %s: %v", postID, err)
		return nil, storeError(err, nil)
	}
	bookmark.Post = post

	uc.notifier.Notify(ctx, entity.NotificationBookmark, post, userID)
	return bookmark, nil
}

func (uc *engagementUseCase) ListBookmarks(ctx context.Context, userID string) ([]*entity.Bookmark, error) {
	return uc.engagementRepo.ListBookmarks(ctx, userID)
}

func (uc *engagementUseCase) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	bookmark, err := uc.engagementRepo.GetBookmark(ctx, bookmarkID)
	if err != nil {
		return storeError(err, nil)
	}
	if bookmark.UserID != userID {
		return ErrForbidden
	}
	return storeError(uc.engagementRepo.DeleteBookmark(ctx, bookmarkID), nil)
}

// BuildCommentTree nests comments under their parents, keeping input order
// among siblings. Comments whose parent is missing become roots.
func BuildCommentTree(comments []*entity.Comment) []*entity.Comment {
	byID := make(map[string]*entity.Comment, len(comments))
	for _, c := range comments {
		c.Replies = []*entity.Comment{}
		byID[c.ID] = c
	}

	roots := []*entity.Comment{}
	for _, c := range comments {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok && parent != c {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}
