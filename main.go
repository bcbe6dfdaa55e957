package main

import (
	"os"

	"github.com/treebird7/Envoak/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
