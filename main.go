package main

import "srvburn/cmd"

func main() {
	cmd.Execute()
}
