package main

import "framedata/cmd/framedata/cmd"

func main() {
	cmd.Execute()
}
