package main

import "github.com/lepinkainen/bookmatch/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
