package main

import "github.com/chriserin/zgr/cmd"

func main() {
	cmd.Execute()
}
