package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"cafebooking/config"
	"cafebooking/utils"
)

// Prints an admin token for GET /bookings signed with ADMIN_JWT_SECRET.
func main() {
	subject := flag.String("sub", "owner", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	config.LoadConfig()
	if config.AppConfig.AdminJWTSecret == "" {
		log.Fatal("ADMIN_JWT_SECRET is not set")
	}

	token, err := utils.GenerateAdminToken([]byte(config.AppConfig.AdminJWTSecret), *subject, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
