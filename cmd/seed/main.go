package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chroniclex/internal/config"
	"chroniclex/internal/db"
	"chroniclex/internal/model"
	"chroniclex/internal/repository"
	"chroniclex/internal/service"
)

const seedPassword = "password123"

type seedUser struct {
	FullName string
	Email    string
	Gender   string
	Bio      string
	Posts    []seedPost
}

type seedPost struct {
	Title   string
	Content string
	Tags    []string
}

var seedData = []seedUser{
	{
		FullName: "Ada Chronicle",
		Email:    "ada@example.com",
		Gender:   "female",
		Bio:      "Writes about distributed systems and coffee.",
		Posts: []seedPost{
			{
				Title:   "Getting started with ChronicleX",
				Content: "Welcome to ChronicleX. This sample post walks through registering an account, publishing your first article and commenting on other authors' work.",
				Tags:    []string{"welcome", "guide"},
			},
			{
				Title:   "Why reading time matters",
				Content: "Readers scan before they commit. Showing an estimate up front lets them decide whether a post fits into their next coffee break, and keeps bounce rates honest.",
				Tags:    []string{"writing"},
			},
		},
	},
	{
		FullName: "Ben Quill",
		Email:    "ben@example.com",
		Gender:   "male",
		Bio:      "",
		Posts: []seedPost{
			{
				Title:   "Notes on tagging discipline",
				Content: "A tag is a promise to the reader. Keep the set small, keep it consistent, and resist inventing a new tag for every post you write.",
				Tags:    []string{"writing", "meta"},
			},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}, &model.PostLike{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	ctx := context.Background()

	users, posts, err := seed(ctx, userRepo, postRepo)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", users)
	log.Printf("  - Posts created: %d", posts)
}

// seed inserts demo users and posts, skipping anything already present so
// the script can be re-run safely.
func seed(ctx context.Context, userRepo repository.UserRepository, postRepo repository.PostRepository) (usersCreated, postsCreated int, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, 0, fmt.Errorf("hash seed password: %w", err)
	}

	for _, su := range seedData {
		user, err := userRepo.FindByEmail(ctx, su.Email)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = &model.User{
				FullName:     su.FullName,
				Email:        su.Email,
				PasswordHash: string(hash),
				Gender:       su.Gender,
				Bio:          su.Bio,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				return usersCreated, postsCreated, fmt.Errorf("create user %s: %w", su.Email, err)
			}
			usersCreated++
		case err != nil:
			return usersCreated, postsCreated, fmt.Errorf("find user %s: %w", su.Email, err)
		}

		existing, _, err := postRepo.List(ctx, repository.PostFilter{AuthorID: &user.ID}, 0, 1)
		if err != nil {
			return usersCreated, postsCreated, fmt.Errorf("list posts for %s: %w", su.Email, err)
		}
		if len(existing) > 0 {
			continue // author already has content, leave it alone
		}

		for _, sp := range su.Posts {
			post := &model.Post{
				AuthorID:    user.ID,
				Title:       sp.Title,
				Content:     sp.Content,
				Tags:        sp.Tags,
				IsPublished: true,
				Slug:        service.GenerateSlug(sp.Title, time.Now()),
				ReadingTime: service.EstimateReadingTime(sp.Content),
			}
			if err := postRepo.Create(ctx, post); err != nil {
				return usersCreated, postsCreated, fmt.Errorf("create post %q: %w", sp.Title, err)
			}
			postsCreated++
		}
	}

	return usersCreated, postsCreated, nil
}
