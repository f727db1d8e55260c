package main

import "robot-models/internal/cli"

func main() {
	cli.Execute()
}
