package main

import (
	"log"

	"blockdir/bootstrap"
)

func main() {
	if _, err := bootstrap.Run(); err != nil {
		log.Fatalf("store node exited: %v", err)
	}
}
