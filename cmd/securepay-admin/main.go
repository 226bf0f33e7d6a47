// Package main provides the entry point for the securepay-admin CLI tool.
package main

import "github.com/turtacn/securepay/cmd/cli"

func main() {
	cli.Execute()
}
