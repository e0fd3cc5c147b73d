// Command createuser inserts a user with a bcrypt-hashed password. Users are
// provisioned with this tool; the API itself has no registration endpoint.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/mcastellanos/tienda/internal/config"
	"github.com/mcastellanos/tienda/internal/hash"
	"github.com/mcastellanos/tienda/internal/models"
	"github.com/mcastellanos/tienda/internal/repo"
)

func main() {
	email := flag.String("email", "", "user email (required)")
	password := flag.String("password", "", "plaintext password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: createuser -email <email> -password <password>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	pwHash, err := hash.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	user := models.User{Email: *email, PasswordHash: pwHash}
	if err := gormRepo.CreateUser(ctx, &user); err != nil {
		log.Fatalf("create user error: %v", err)
	}

	log.Printf("created user %d (%s)", user.ID, user.Email)
}
