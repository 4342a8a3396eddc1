package main

import (
	"os"

	"github.com/RichardMcSorley/breather/cmd"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func init() {
	// .env is optional, real environment variables win
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	cmd.Execute()
}
