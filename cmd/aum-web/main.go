package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	aum "github.com/aum-search/aum-web/pkg"
	"github.com/aum-search/aum-web/pkg/cmd"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Unable to load .env file: %s", err)
	}

	newLogger := zap.NewDevelopment
	if aum.Production() {
		newLogger = zap.NewProduction
	}

	l, err := newLogger()
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	logger := l.Sugar()
	if err := cmd.Run(logger); err != nil {
		logger.Fatalf("Unable to start AUM web: %s", err)
	}
}
