package main

import "github.com/avatarneil/stack-status/cmd/stack-status/cli"

func main() {
	cli.Execute()
}
