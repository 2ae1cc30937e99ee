package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"skill-swap/internal/config"
	"skill-swap/internal/database/seeder"
	"skill-swap/internal/pkg/jwt"

	"github.com/google/uuid"
)

// token prints a signed access token for a user id. With -list it prints the
// demo users instead.
func main() {
	userID := flag.String("user", "", "user id to sign a token for")
	list := flag.Bool("list", false, "list demo user ids")
	flag.Parse()

	if *list {
		for _, u := range seeder.DemoUsers() {
			fmt.Printf("%s\t%s\t%s\n", u.ID, u.Name, u.Visibility)
		}
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(*userID))
	if err != nil {
		log.Fatalf("invalid -user: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	tok, err := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.App.AppName).GenerateToken(id)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(tok)
}
