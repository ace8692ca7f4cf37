// Command termfolio is a portfolio explored from a terminal prompt.
package main

import "github.com/d-kuro/termfolio/internal/cmd"

func main() {
	cmd.Execute()
}
