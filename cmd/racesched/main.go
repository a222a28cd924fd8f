package main

import "github.com/taichi6930/race-schedule-api-sub006/internal/cli"

func main() {
	cli.Execute()
}
