package main

import (
	"log/slog"

	"github.com/soocke/note-bot-go/cmd"
)

func main() {
	// Level is raised to debug once the config or --debug asks for it.
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	logger := NewLogger(level)

	cmd.Execute(logger, level)
}
