package persistent

import (
	"context"
	"errors"

	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	UsernameExists(ctx context.Context, username, excludeID string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	GetProfile(ctx context.Context, userID string) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, profile *entity.Profile) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and its profile in one transaction.
func (r *userRepository) Create(ctx context.Context, user *entity.User, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userModel := ToUserModel(user)
		if err := tx.Omit(clause.Associations).Create(userModel).Error; err != nil {
			return err
		}

		if profile == nil {
			profile = &entity.Profile{}
		}
		profileModel := ToProfileModel(profile)
		profileModel.UserID = userModel.ID
		profileModel.FillDefaultsFrom(userModel)
		if err := tx.Omit(clause.Associations).Create(profileModel).Error; err != nil {
			return err
		}

		*user = *ToUserEntity(userModel)
		*profile = *ToProfileEntity(profileModel)
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	return r.exists(ctx, "email = ?", email, excludeID)
}

func (r *userRepository) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	return r.exists(ctx, "username = ?", username, excludeID)
}

func (r *userRepository) exists(ctx context.Context, cond, value, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where(cond, value)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves the user and re-saves its profile in the same transaction,
// so an empty profile full name picks up the user's.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("id = ?", user.ID).First(&existing).Error; err != nil {
			return err
		}

		userModel := ToUserModel(user)
		userModel.CreatedAt = existing.CreatedAt
		if err := tx.Omit(clause.Associations).Save(userModel).Error; err != nil {
			return err
		}

		var profileModel models.Profile
		err := tx.Where("user_id = ?", userModel.ID).First(&profileModel).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profileModel = models.Profile{UserID: userModel.ID}
		} else if err != nil {
			return err
		}
		profileModel.FillDefaultsFrom(userModel)
		if err := tx.Omit(clause.Associations).Save(&profileModel).Error; err != nil {
			return err
		}

		*user = *ToUserEntity(userModel)
		return nil
	})
}

// Delete removes the user with its profile, posts and everything hanging off them.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []string
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if err := deletePostDependants(tx, postIDs); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		for _, model := range []interface{}{&models.PostLike{}, &models.Bookmark{}, &models.Notification{}, &models.Profile{}} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *userRepository) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	var profileModel models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel).Error; err != nil {
		return nil, err
	}
	return ToProfileEntity(&profileModel), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Where("id = ?", profile.UserID).First(&owner).Error; err != nil {
			return err
		}

		var existing models.Profile
		if err := tx.Where("user_id = ?", profile.UserID).First(&existing).Error; err != nil {
			return err
		}

		profileModel := ToProfileModel(profile)
		profileModel.ID = existing.ID
		profileModel.CreatedAt = existing.CreatedAt
		if profileModel.Image == "" {
			profileModel.Image = models.DefaultProfileImage
		}
		profileModel.FillDefaultsFrom(&owner)
		if err := tx.Omit(clause.Associations).Save(profileModel).Error; err != nil {
			return err
		}

		*profile = *ToProfileEntity(profileModel)
		return nil
	})
}

// deletePostDependants removes rows referencing the given posts.
func deletePostDependants(tx *gorm.DB, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	for _, model := range []interface{}{&models.Comment{}, &models.PostLike{}, &models.Bookmark{}, &models.Notification{}} {
		if err := tx.Where("post_id IN ?", postIDs).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
