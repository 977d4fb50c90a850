package main

import "github.com/boozedog/contextcrafter/cmd"

func main() {
	cmd.Execute()
}
