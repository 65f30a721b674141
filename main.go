package main

import "mods-merger/cmd"

func main() {
	cmd.Execute()
}
