package main

import (
	"github.com/MartinBock1/Coderr/internal/app"
	"github.com/MartinBock1/Coderr/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err.Error())
	}
}
