package main

import "github.com/MikeMC777/ordenes-core/internal/cli"

func main() {
	cli.Execute()
}
