package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"codeberg.org/scholargo/server/internal/auth"
	"codeberg.org/scholargo/server/internal/database"
	"codeberg.org/scholargo/server/scholargo/profiles"
	"codeberg.org/scholargo/server/scholargo/quota"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// mints a Supabase-style access token for local testing, optionally creating the user's profile row
func main() {
	userID := flag.String("user", "", "user id (random uuid when empty)")
	email := flag.String("email", "test@scholargo.dev", "email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	withProfile := flag.Bool("profile", false, "create the free profile row in the database")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	secret := os.Getenv("SUPABASE_JWT_SECRET")
	if secret == "" {
		log.Fatal("SUPABASE_JWT_SECRET not set")
	}

	if *userID == "" {
		*userID = uuid.NewString()
	}

	if *withProfile {
		ensureProfile(*userID)
	}

	token, err := auth.NewVerifier(secret).Sign(*userID, *email, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Printf("user id: %s\n\n%s\n\n", *userID, token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}

func ensureProfile(userID string) {
	connString := os.Getenv("SUPABASE_CONNECTION_STRING")
	if connString == "" {
		log.Fatal("SUPABASE_CONNECTION_STRING not set")
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	profile, err := quota.NewLedger(profiles.NewRepository(db)).GetOrCreateProfile(ctx, userID)
	if err != nil {
		log.Fatalf("Failed to create profile: %v", err)
	}

	fmt.Printf("profile ready: plan=%s\n", profile.PlanType)
}
