package main

import (
	"os"

	"github.com/kaitj/nmind-proceedings/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
