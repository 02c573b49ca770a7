package main

import "github.com/mkim/storefront-client/internal/cmd"

func main() {
	cmd.Execute()
}
