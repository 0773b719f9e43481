package main

import "soposyncd/cmd/soposyncd/cmd"

func main() {
	cmd.Execute()
}
