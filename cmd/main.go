package main

import (
	"log"

	"github.com/gaaferHajji2/go-blog-api/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		application.Log.Fatal("HTTP server exited", "error", err)
	}
}
