package main

import "github.com/endowlab/endowdb/cmd"

func main() {
	cmd.Execute()
}
