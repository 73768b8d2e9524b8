package main

import "freq/internal/cli"

func main() {
	cli.Execute()
}
