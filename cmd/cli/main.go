package main

import "phd/cmd/cli/app/cmd"

func main() {
	cmd.Execute()
}
