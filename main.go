package main

import "github.com/kettleby/dossier/cmd"

func main() {
	cmd.Execute()
}
