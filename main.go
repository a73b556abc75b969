package main

import (
	"github.com/larch-c/xfbank/cmd"
)

func main() {
	cmd.Execute()
}
