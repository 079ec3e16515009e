package main

import "github.com/streambinder/tubetag/cmd"

func main() {
	cmd.Execute()
}
