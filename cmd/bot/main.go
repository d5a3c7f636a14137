package main

import (
	"log"

	"github.com/joho/godotenv"

	corecmd "contestbot/core/cmd"
	"contestbot/internal/app"
	"contestbot/internal/config"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "configs/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*config.Config)
			if !ok {
				log.Fatal("unexpected config type")
			}
			return app.New(cfg)
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
