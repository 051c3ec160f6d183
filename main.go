package main

import "ember/cmd"

func main() {
	cmd.Execute()
}
