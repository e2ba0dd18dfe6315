package main

import "github.com/TocConsulting/cryptex/internal/cli"

func main() {
	cli.Execute()
}
