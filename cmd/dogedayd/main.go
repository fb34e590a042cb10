package main

import (
	"context"
	"log"

	"github.com/ownthedoge/dogeday/internal/app"
	"github.com/ownthedoge/dogeday/internal/app/bootstrap"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
