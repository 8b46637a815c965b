package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Ceesaxp/beads/cmd/bd-release/commands"
)

const (
	cmdName = "bd-release"

	shortDesc = "Release tooling for the beads project."
	longDesc  = `Release tooling for the beads project.

bd-release keeps the version recorded across the beads project files in
lockstep. It reads the current version from the canonical source of truth,
rewrites every tracked file, verifies the result, and can create the version
bump commit. It also presents project statistics retrieved from the bd CLI.
`
)

func main() {
	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
