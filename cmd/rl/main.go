// Package main is the entry point for the rl CLI (alias for repolist).
package main

import (
	"github.com/justrnr500/repolist/internal/cmd"
)

func main() {
	cmd.Execute()
}
