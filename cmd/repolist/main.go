// Package main is the entry point for the repolist CLI.
package main

import (
	"github.com/justrnr500/repolist/internal/cmd"
)

func main() {
	cmd.Execute()
}
