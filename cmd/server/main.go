package main

import (
	"github.com/transparencia-lab/politigraph/backend/internal/server"
	"github.com/transparencia-lab/politigraph/backend/internal/util"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
