package main

import "github.com/aurumfin/aurum/cmd"

func main() {
	cmd.Execute()
}
