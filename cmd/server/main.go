package main

import (
	"github.com/sphereplay/arena/internal/app/server"
	"github.com/sphereplay/arena/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	logging.Fatal("Room server exited: ", zap.Error(
		server.NewServer().Start(),
	))
}
