package main

import "github.com/mageroni/Agent-Quickstart/internal/cli"

func main() {
	cli.Execute()
}
