package main

import (
	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/cmd"
)

var version string

func main() {
	logger.Infof("version: %s", version)

	cmd.Execute()
}
