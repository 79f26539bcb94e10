package main

import "github.com/rafflehouse/artcli/cmd"

func main() {
	cmd.Execute()
}
