package main

import "github.com/alexiusacademia/gobiot/cmd"

func main() {
	cmd.Execute()
}
