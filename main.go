package main

import "github.com/saransh09/pageindex/cmd"

func main() {
	cmd.Execute()
}
