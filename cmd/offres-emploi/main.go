// Package main is the entry point for the offres-emploi CLI.
package main

import (
	"github.com/emploitools/offresemploi/cmd/offres-emploi/cmd"
)

func main() {
	cmd.Execute()
}
