package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/nexuspump/nexuspump-api/cmd/app"
)

// @title           NexusPump API
// @description     Bonding-curve token launchpad with AMM graduation.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token carrying the caller's wallet address
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
