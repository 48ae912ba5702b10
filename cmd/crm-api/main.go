package main

import (
	"log"
	"os"

	"github.com/coderanges/swiftcrm/cmd/crm-api/app"
	"github.com/coderanges/swiftcrm/configs"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	a, cleanup, err := app.InitWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	log.Printf("crm-api (%s) listening on %s", env, cfg.App.HTTPAddr)
	if err := a.Router.Run(cfg.App.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
