package main

import "github.com/frsdk/frsdk-go/internal/cli"

func main() {
	cli.Execute()
}
