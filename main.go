package main

import "github.com/registroos/registro-os/cmd"

func main() {
	cmd.Execute()
}
