package main

import "github.com/KaramelBytes/mbtiboard/cmd"

func main() {
	cmd.Execute()
}
