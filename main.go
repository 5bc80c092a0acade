package main

import (
	"log"

	"github.com/commercepulse/telemetry/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("telemetry: %v", err)
	}
}
