package main

import "github.com/JonMunkholm/cloudsaver/internal/cli"

func main() {
	cli.Execute()
}
