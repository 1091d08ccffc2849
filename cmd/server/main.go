// Command server runs the store admin HTTP API.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/simp-lee/storeadmin/internal/app"
	"github.com/simp-lee/storeadmin/internal/config"
)

func main() {
	defaultPath := "configs/config.yaml"
	if p := os.Getenv("STOREADMIN_CONFIG"); p != "" {
		defaultPath = p
	}
	configPath := flag.String("config", defaultPath, "path to configuration file (env STOREADMIN_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}

	if err := a.Run(); err != nil {
		log.Fatal("server error: ", err)
	}
}
