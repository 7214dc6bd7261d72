package main

import "github.com/mvp-joe/springctx/internal/cli"

func main() {
	cli.Execute()
}
