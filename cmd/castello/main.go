package main

import (
	"github.com/joho/godotenv"

	"github.com/castello/castello-go/internal/cli"
)

func main() {
	// Optional .env for CASTELLO_SERVER etc.
	_ = godotenv.Load()

	cli.Execute()
}
