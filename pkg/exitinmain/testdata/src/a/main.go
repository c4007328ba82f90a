package main

import (
	"os"
	quit "os"
)

func main() {
	defer func() {
		os.Exit(2) // want "os.Exit call inside main function"
	}()

	if len(os.Args) > 1 {
		quit.Exit(1) // want "os.Exit call inside main function"
	}

	os.Exit(0) // want "os.Exit call inside main function"
}

func helper() {
	os.Exit(1)
}
