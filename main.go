// Package main is the entry point for the CodeLens CLI.
package main

import "codelens.dev/pkg/codelens/cmd"

func main() {
	cmd.Execute()
}
