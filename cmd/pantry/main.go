// Package main is the pantry command.
package main

import "github.com/mesh-intelligence/pantry/internal/cli"

func main() {
	cli.Execute()
}
