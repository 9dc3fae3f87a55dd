package main

import (
	"github.com/dnsvantage/dnsvantage/cmd"
)

func main() {
	cmd.Execute()
}
