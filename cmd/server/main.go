package main

import "github.com/sportmeet/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
