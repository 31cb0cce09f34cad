package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/beyzakarasahann/AcuRate-sub001/internal/app"
)

func main() {
	// Local development loads .env; deployed environments set real env vars
	// and have no .env file, which is fine.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		a.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
