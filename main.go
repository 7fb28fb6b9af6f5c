package main

import "dex-wiki/cmd"

func main() {
	cmd.Execute()
}
