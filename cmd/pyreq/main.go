package main

import "pyreq/internal/cli"

func main() {
	cli.Execute()
}
