package main

import (
	"log"

	"github.com/Big-jpg/swipehire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
