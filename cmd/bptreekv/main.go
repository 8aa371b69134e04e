package main

import "bptree/internal/cli"

func main() {
	cli.Execute()
}
