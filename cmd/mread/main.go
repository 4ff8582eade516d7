package main

import "github.com/TimelordUK/mread/internal/cli"

func main() {
	cli.Execute()
}
