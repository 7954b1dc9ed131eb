package main

import "github.com/agentic-research/locus/cmd"

func main() {
	cmd.Execute()
}
