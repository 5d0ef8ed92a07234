// Seeds demo accounts for local development: one teacher and one
// student, both with the password printed at the end.
package main

import (
	"context"
	"log"

	"auralearn/internal/config"
	"auralearn/internal/database"
	"auralearn/internal/domain"
	"auralearn/internal/repository"
	"auralearn/internal/util"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const demoPassword = "Demo1234!"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewSQLXSQLiteDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewSQLXUserRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	seeds := []*domain.User{
		domain.NewUser(util.NewULID(), "Demo Teacher", "teacher@auralearn.dev", string(hash), domain.RoleTeacher),
		domain.NewUser(util.NewULID(), "Demo Student", "student@auralearn.dev", string(hash), domain.RoleStudent),
	}

	g, ctx := errgroup.WithContext(context.Background())
	for _, user := range seeds {
		g.Go(func() error {
			if err := userRepo.CreateUser(ctx, user); err != nil {
				log.Printf("Skipping %s: %v", user.Email, err)
				return nil // already seeded is fine
			}
			log.Printf("Seeded %s account: %s", user.Role, user.Email)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Demo password for all seeded accounts: %s", demoPassword)
}
