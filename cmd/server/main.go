// Command server runs the development backend the somapoll CLI talks to.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/somapoll/internal/server"
	"github.com/dmitrijs2005/somapoll/internal/server/config"
)

func main() {
	app, err := server.NewApp(config.LoadConfig())
	if err != nil {
		log.Fatalf("server: %v", err)
	}
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
