package main

import (
	"log"

	"github.com/rabotazarulem/driver-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
