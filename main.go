package main

import "rpbot/cmd"

func main() {
	cmd.Execute()
}
