package main

import "reco/internal/cli"

func main() {
	cli.Execute()
}
