package main

import (
	"github.com/atlasgraph/atlas/internal/server"
	"github.com/atlasgraph/atlas/internal/util"
	"github.com/atlasgraph/atlas/pkg/logger"
	"github.com/atlasgraph/atlas/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	logger.Init(console.NewConsoleBackend(console.ConsoleBackendParams{
		Debug: debug,
	}))

	server.Init()
}
