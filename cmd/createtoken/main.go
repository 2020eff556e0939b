package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"dayflow.app/dayflow/core/models"
	"dayflow.app/dayflow/security"
)

// Mints a development identity token. Production tokens come from the
// identity provider, not from here.
func main() {
	userID := flag.String("user", "", "user id (uuid) to embed in the token")
	name := flag.String("name", "Dev User", "full name claim")
	role := flag.String("role", models.RoleEmployee, "role claim: Employee or HR")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	secret := os.Getenv("DAYFLOW_JWT_SECRET")
	if secret == "" {
		log.Fatal("DAYFLOW_JWT_SECRET is not set")
	}

	token, err := security.CreateIdentityToken(security.Identity{
		UserID:   *userID,
		FullName: *name,
		Role:     *role,
	}, secret, *ttl)
	if err != nil {
		log.Fatalf("failed to create token: %v", err)
	}

	fmt.Println(token)
}
