package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spigell/interview-coach/cmd"
)

func main() {
	// A missing .env file is fine; config and flags cover everything.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
