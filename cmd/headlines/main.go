package main

import "github.com/newsreader/headlines/internal/cli"

func main() {
	cli.Execute()
}
