package main

import "protokollctl/cmd"

func main() {
	cmd.Execute()
}
