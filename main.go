package main

import "github.com/jfmyers9/crates/cmd"

func main() {
	cmd.Execute()
}
