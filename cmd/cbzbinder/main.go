package main

import (
	"github.com/danielkitchener/CBZBinder/cmd/cbzbinder/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	commands.Execute()
}
