package main

import "github.com/funvibe/funssa/pkg/cli"

func main() {
	cli.Run()
}
