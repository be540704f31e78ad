package main

import (
	"github.com/joho/godotenv"

	"chatsource/pkg/cli"
	"chatsource/pkg/logger"
)

func main() {
	_ = godotenv.Load(".env")
	logger.Init()
	cli.Execute()
}
