package main

import (
	"github.com/Nanssss/bipmap/cmd/bipmap/cmd"
)

func main() {
	cmd.Execute()
}
