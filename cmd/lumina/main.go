package main

import "github.com/Veemo-wt/Lumina-Backend/cmd/lumina/cmd"

func main() {
	cmd.Execute()
}
