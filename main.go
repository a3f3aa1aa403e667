package main

import "github.com/iksnae/deepwork/cmd"

func main() {
	cmd.Execute()
}
