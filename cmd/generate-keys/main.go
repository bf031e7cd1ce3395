package main

import (
	"fmt"
	"log"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/moroccotransfers/booking-backend/internal/utils"
)

func main() {
	fmt.Println("===========================================")
	fmt.Println("Key Generator for Morocco Transfers Backend")
	fmt.Println("===========================================")
	fmt.Println()

	accessSecret, refreshSecret, err := utils.GenerateJWTSecrets()
	if err != nil {
		log.Fatalf("Failed to generate JWT secrets: %v", err)
	}

	vapidPrivate, vapidPublic, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		log.Fatalf("Failed to generate VAPID keys: %v", err)
	}

	fmt.Println("Add these to your .env file or deployment secrets:")
	fmt.Println()
	fmt.Printf("JWT_SECRET=%s\n", accessSecret)
	fmt.Printf("JWT_REFRESH_SECRET=%s\n", refreshSecret)
	fmt.Printf("VAPID_PUBLIC_KEY=%s\n", vapidPublic)
	fmt.Printf("VAPID_PRIVATE_KEY=%s\n", vapidPrivate)
	fmt.Println()
	fmt.Println("The VAPID public key also goes into the dashboard's service")
	fmt.Println("worker registration. Keep the private key and JWT secrets out")
	fmt.Println("of version control.")
	fmt.Println("===========================================")
}
