package main

import "github.com/kerbaras/bookfinder/cmd/bookfinder"

func main() {
	cmd.Execute()
}
