package main

import "github.com/kfreiman/pagesmith/cmd"

func main() {
	cmd.Execute()
}
