package main

import (
	"InfraDash/cmd"
	"InfraDash/internal/pkg/logger"
)

func main() {
	defer logger.Sync()
	cmd.Execute()
}
