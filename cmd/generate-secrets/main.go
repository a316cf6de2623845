package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Hamid-2027/seatMeCombine/internal/utils"
)

func main() {
	password := flag.String("admin-password", "", "also print an ADMIN_PASSWORD_HASH for this password")
	cost := flag.Int("bcrypt-cost", 12, "bcrypt cost for the admin password hash")
	flag.Parse()

	secret, err := utils.GenerateSecret(32)
	if err != nil {
		log.Fatalf("Failed to generate secret: %v", err)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Printf("JWT_SECRET=%s\n", secret)

	if *password != "" {
		hash, err := utils.HashAdminPassword(*password, *cost)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	}

	fmt.Println()
	fmt.Println("Keep these values out of version control.")
}
