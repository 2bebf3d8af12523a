package main

import (
	"github.com/jithpillai/zstore/cmd"
)

func main() {
	cmd.Start()
}
