package main

import "github.com/railtrace/railway-assets/cmd"

func main() {
	cmd.Execute()
}
