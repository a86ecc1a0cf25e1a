package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"blog-api/pkg/cache"
	"blog-api/pkg/config"
	"blog-api/pkg/database"
	"blog-api/pkg/logger"
	"blog-api/pkg/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// categoryCacheKey mirrors the blog service's category list cache.
const categoryCacheKey = "categories:all"

type seedUser struct {
	email    string
	fullName string
	password string
	author   bool
}

var testUsers = []seedUser{
	{"alice@test.com", "Alice Liddell", "password123", true},
	{"bob@test.com", "Bob Stone", "password123", true},
	{"charlie@test.com", "", "password123", false},
	{"diana@test.com", "Diana Prince", "password123", false},
}

var testCategories = []string{"Programming", "Travel", "Food & Drink"}

func main() {
	var postsPerUser int
	flag.IntVar(&postsPerUser, "posts", 3, "Posts to create for every author")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, category cache will not be cleared: %v", err)
		redisClient = nil
	}

	if err := seedDatabase(context.Background(), db, redisClient, log, postsPerUser); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(ctx context.Context, db *gorm.DB, redisClient *redis.Client, log *logger.Logger, postsPerUser int) error {
	db = db.WithContext(ctx)

	users := make([]*models.User, 0, len(testUsers))
	for _, data := range testUsers {
		user, err := seedAccount(db, data, log)
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	categories := make([]*models.Category, 0, len(testCategories))
	for _, title := range testCategories {
		category := &models.Category{}
		err := db.Where(models.Category{Slug: models.Slugify(title)}).
			Attrs(models.Category{Title: title}).
			FirstOrCreate(category).Error
		if err != nil {
			return fmt.Errorf("failed to create category %s: %w", title, err)
		}
		categories = append(categories, category)
	}
	log.Info("Seeded %d categories", len(categories))

	for i, data := range testUsers {
		if !data.author {
			continue
		}
		author := users[i]

		var existing int64
		if err := db.Model(&models.Post{}).Where("user_id = ?", author.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			log.Info("User %s already has posts, skipping", author.Username)
			continue
		}

		for n := 0; n < postsPerUser; n++ {
			category := categories[(i+n)%len(categories)]
			if err := seedPost(db, author, users, category, n); err != nil {
				log.Error("Failed to create post %d for user %s: %v", n+1, author.Username, err)
			}
		}
		log.Info("Created %d posts for user %s", postsPerUser, author.Username)
	}

	if redisClient != nil {
		if err := redisClient.Del(ctx, categoryCacheKey).Err(); err != nil {
			log.Warn("Failed to clear category cache: %v", err)
		}
	}
	return nil
}

func seedAccount(db *gorm.DB, data seedUser, log *logger.Logger) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", data.email).First(&existing).Error
	if err == nil {
		log.Info("User %s already exists, skipping", existing.Username)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: data.email, FullName: data.fullName, Password: string(hashedPassword)}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{UserID: user.ID, Author: data.author}
		profile.FillDefaultsFrom(user)
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", data.email, err)
	}

	log.Info("Created user: %s (%s)", user.Username, user.Email)
	return user, nil
}

// seedPost creates a post with a comment thread and likes from every other user.
func seedPost(db *gorm.DB, author *models.User, users []*models.User, category *models.Category, index int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("user_id = ?", author.ID).First(&profile).Error; err != nil {
			return err
		}

		status := models.StatusActive
		if index == 2 {
			status = models.StatusDraft
		}
		post := &models.Post{
			UserID:      author.ID,
			ProfileID:   &profile.ID,
			Title:       fmt.Sprintf("%s #%d by %s", category.Title, index+1, author.FullName),
			Description: fmt.Sprintf("Seeded post number %d in %s.", index+1, category.Title),
			Tags:        "seed,demo",
			CategoryID:  &category.ID,
			Status:      status,
		}
		if err := tx.Create(post).Error; err != nil {
			return err
		}

		var parent *string
		for _, reader := range users {
			if reader.ID == author.ID {
				continue
			}
			comment := &models.Comment{
				PostID:   post.ID,
				ParentID: parent,
				Name:     reader.FullName,
				Email:    reader.Email,
				Body:     fmt.Sprintf("Thanks for \"%s\"!", post.Title),
			}
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
			if parent == nil {
				parent = &comment.ID
			}

			if err := tx.Create(&models.PostLike{PostID: post.ID, UserID: reader.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
