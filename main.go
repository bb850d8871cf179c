package main

import "github.com/alixiazul/data-engineering-project/cmd"

func main() {
	cmd.Execute()
}
