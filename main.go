package main

import "github.com/nyayabharat/nyaya-go/cmd"

func main() {
	cmd.Execute()
}
