package http

import (
	"context"
	"io"
	"time"

	"blog-api/pkg/logger"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockCategoryUseCase is a mock implementation of CategoryUseCase
type MockCategoryUseCase struct {
	mock.Mock
}

func (m *MockCategoryUseCase) CreateCategory(ctx context.Context, input usecase.CategoryInput) (*entity.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryUseCase) ListCategories(ctx context.Context, depth int) ([]*entity.CategoryDetail, error) {
	args := m.Called(ctx, depth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CategoryDetail), args.Error(1)
}

func (m *MockCategoryUseCase) GetCategory(ctx context.Context, id string, depth int) (*entity.CategoryDetail, error) {
	args := m.Called(ctx, id, depth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CategoryDetail), args.Error(1)
}

func (m *MockCategoryUseCase) GetCategoryBySlug(ctx context.Context, slug string, depth int) (*entity.CategoryDetail, error) {
	args := m.Called(ctx, slug, depth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CategoryDetail), args.Error(1)
}

func (m *MockCategoryUseCase) UpdateCategory(ctx context.Context, id string, input usecase.CategoryInput, partial bool, depth int) (*entity.CategoryDetail, error) {
	args := m.Called(ctx, id, input, partial, depth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CategoryDetail), args.Error(1)
}

func (m *MockCategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryUseCase) PostCount(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

var _ usecase.CategoryUseCase = (*MockCategoryUseCase)(nil)

// MockUserUseCase is a mock implementation of UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateUser(ctx context.Context, id string, input usecase.UpdateUserInput) (*entity.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserUseCase) GetProfile(ctx context.Context, userID string) (*entity.Profile, *entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Profile), args.Get(1).(*entity.User), args.Error(2)
}

func (m *MockUserUseCase) UpdateProfile(ctx context.Context, userID string, input usecase.ProfileInput) (*entity.Profile, *entity.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Profile), args.Get(1).(*entity.User), args.Error(2)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, userID string, input usecase.PostInput) (*entity.Post, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPostBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(ctx context.Context, userID, postID string, input usecase.PostInput) (*entity.Post, error) {
	args := m.Called(ctx, userID, postID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(ctx context.Context, userID, postID string) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockPostUseCase) IncrementView(ctx context.Context, postID, viewerKey string) (bool, error) {
	args := m.Called(ctx, postID, viewerKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostUseCase) ToggleLike(ctx context.Context, userID, postID string) (bool, int64, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

// MockEngagementUseCase is a mock implementation of EngagementUseCase
type MockEngagementUseCase struct {
	mock.Mock
}

func (m *MockEngagementUseCase) AddComment(ctx context.Context, postID string, input usecase.CommentInput) (*entity.Comment, error) {
	args := m.Called(ctx, postID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockEngagementUseCase) CommentTree(ctx context.Context, postID string) ([]*entity.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockEngagementUseCase) DeleteComment(ctx context.Context, userID, commentID string) error {
	args := m.Called(ctx, userID, commentID)
	return args.Error(0)
}

func (m *MockEngagementUseCase) AddBookmark(ctx context.Context, userID, postID string) (*entity.Bookmark, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Bookmark), args.Error(1)
}

func (m *MockEngagementUseCase) ListBookmarks(ctx context.Context, userID string) ([]*entity.Bookmark, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Bookmark), args.Error(1)
}

func (m *MockEngagementUseCase) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	args := m.Called(ctx, userID, bookmarkID)
	return args.Error(0)
}

var _ usecase.EngagementUseCase = (*MockEngagementUseCase)(nil)

type mockPresigner struct {
	mock.Mock
}

func (m *mockPresigner) PresignGet(key string, ttl time.Duration) (string, error) {
	args := m.Called(key, ttl)
	return args.String(0), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testLogger() *logger.Logger {
	return logger.NewWithWriters(io.Discard, io.Discard)
}

// asUser runs the handler as an authenticated user.
func asUser(userID string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		handler(c)
	}
}
