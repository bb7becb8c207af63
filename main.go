// The main package for the bookharvest executable.
package main

import (
	"github.com/shelfdata/bookharvest/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
