package main

import "videovault/cmd/videovault-cli/cmd"

func main() {
	cmd.Execute()
}
