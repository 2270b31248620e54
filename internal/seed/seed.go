package seed

import (
	"fmt"
	"log"

	"devlink/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data and resets identity counters.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, experiences, educations, profiles, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Seed populates the database with test users, profiles and an active feed.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	profiles := 0
	for i := range users {
		// Leave a few accounts without a profile; the directory should not
		// assume every user has one.
		if i%7 == 6 {
			continue
		}
		if _, err := s.factory.CreateProfile(&users[i]); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		profiles++
	}
	log.Printf("%d profiles created", profiles)

	posts, err := s.createFeed(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create feed: %w", err)
	}
	log.Printf("%d posts created", posts)

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *Seeder) createUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	// Always include a known login for local development
	if count > 0 {
		dev, err := s.factory.CreateUser(func(u *models.User) {
			u.Name = "Dev User"
			u.Email = "dev@example.com"
		})
		if err == nil {
			users = append(users, *dev)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, *user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func (s *Seeder) createFeed(users []models.User, count int) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	created := 0
	for i := 0; i < count; i++ {
		author := users[s.factory.r.Intn(len(users))]
		post, err := s.factory.CreatePost(&author)
		if err != nil {
			return created, err
		}
		created++

		for c := 0; c < s.factory.r.Intn(4); c++ {
			commenter := users[s.factory.r.Intn(len(users))]
			if _, err := s.factory.CreateComment(&commenter, post); err != nil {
				return created, err
			}
		}

		likers := s.factory.r.Perm(len(users))
		for _, idx := range likers[:s.factory.r.Intn(min(len(users), 6))] {
			if err := s.factory.CreateLike(&users[idx], post); err != nil {
				return created, err
			}
		}

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return created, nil
}
