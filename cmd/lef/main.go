package main

import "github.com/OpenTraceLab/OpenTraceLEF/cmd/lef/cmd"

func main() {
	cmd.Execute()
}
