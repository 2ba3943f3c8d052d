package main

import "github.com/nerdjerry/ai-projects/internal/cli"

func main() {
	cli.Execute()
}
