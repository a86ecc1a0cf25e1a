package persistent

import (
	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"
)

func ToUserEntity(m *models.User) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		FullName:     m.FullName,
		PasswordHash: m.Password,
		OTP:          m.OTP,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *models.User {
	if e == nil {
		return nil
	}

	return &models.User{
		ID:        e.ID,
		Email:     e.Email,
		Username:  e.Username,
		FullName:  e.FullName,
		Password:  e.PasswordHash,
		OTP:       e.OTP,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToProfileEntity(m *models.Profile) *entity.Profile {
	if m == nil {
		return nil
	}

	return &entity.Profile{
		ID:        m.ID,
		UserID:    m.UserID,
		Image:     m.Image,
		FullName:  m.FullName,
		Bio:       m.Bio,
		About:     m.About,
		Author:    m.Author,
		Country:   m.Country,
		Github:    m.Github,
		Instagram: m.Instagram,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToProfileModel(e *entity.Profile) *models.Profile {
	if e == nil {
		return nil
	}

	return &models.Profile{
		ID:        e.ID,
		UserID:    e.UserID,
		Image:     e.Image,
		FullName:  e.FullName,
		Bio:       e.Bio,
		About:     e.About,
		Author:    e.Author,
		Country:   e.Country,
		Github:    e.Github,
		Instagram: e.Instagram,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToCategoryEntity(m *models.Category) *entity.Category {
	if m == nil {
		return nil
	}

	return &entity.Category{
		ID:    m.ID,
		Title: m.Title,
		Image: m.Image,
		Slug:  m.Slug,
	}
}

func ToCategoryModel(e *entity.Category) *models.Category {
	if e == nil {
		return nil
	}

	return &models.Category{
		ID:    e.ID,
		Title: e.Title,
		Image: e.Image,
		Slug:  e.Slug,
	}
}

func ToPostEntity(m *models.Post) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:          m.ID,
		UserID:      m.UserID,
		ProfileID:   m.ProfileID,
		CategoryID:  m.CategoryID,
		Title:       m.Title,
		Image:       m.Image,
		Description: m.Description,
		Tags:        m.Tags,
		Status:      entity.PostStatus(m.Status),
		View:        m.View,
		Slug:        m.Slug,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.User.ID != "" {
		post.Author = ToUserEntity(&m.User)
	}
	if m.Profile != nil && m.Profile.ID != "" {
		post.AuthorProfile = ToProfileEntity(m.Profile)
	}

	return post
}

func ToPostModel(e *entity.Post) *models.Post {
	if e == nil {
		return nil
	}

	return &models.Post{
		ID:          e.ID,
		UserID:      e.UserID,
		ProfileID:   e.ProfileID,
		CategoryID:  e.CategoryID,
		Title:       e.Title,
		Image:       e.Image,
		Description: e.Description,
		Tags:        e.Tags,
		Status:      models.PostStatus(e.Status),
		View:        e.View,
		Slug:        e.Slug,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToCommentEntity(m *models.Comment) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		ParentID:  m.ParentID,
		Name:      m.Name,
		Email:     m.Email,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *models.Comment {
	if e == nil {
		return nil
	}

	return &models.Comment{
		ID:        e.ID,
		PostID:    e.PostID,
		ParentID:  e.ParentID,
		Name:      e.Name,
		Email:     e.Email,
		Body:      e.Body,
		CreatedAt: e.CreatedAt,
	}
}

func ToBookmarkEntity(m *models.Bookmark) *entity.Bookmark {
	if m == nil {
		return nil
	}

	bookmark := &entity.Bookmark{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		CreatedAt: m.CreatedAt,
	}
	if m.Post.ID != "" {
		bookmark.Post = ToPostEntity(&m.Post)
	}
	return bookmark
}

func ToNotificationModel(e *entity.Notification) *models.Notification {
	if e == nil {
		return nil
	}

	return &models.Notification{
		ID:        e.ID,
		UserID:    e.UserID,
		PostID:    e.PostID,
		Type:      models.NotificationType(e.Type),
		Seen:      e.Seen,
		CreatedAt: e.CreatedAt,
	}
}

func ToNotificationEntity(m *models.Notification) *entity.Notification {
	if m == nil {
		return nil
	}

	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		Type:      entity.NotificationType(m.Type),
		Seen:      m.Seen,
		CreatedAt: m.CreatedAt,
	}
}
