package main

import "github.com/bikeq/bikeq/cmd"

func main() {
	cmd.Execute()
}
