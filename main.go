package main

import (
	"loadcmp/cmd"
)

func main() {
	cmd.Execute()
}
