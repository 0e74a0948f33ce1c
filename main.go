package main

import (
	"os"

	"github.com/rag-nar1/Bloom-Filter/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
