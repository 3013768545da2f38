package main

import (
	"os"

	"github.com/dzvoice/voice-agent/agentservice"
)

func main() {
	if err := agentservice.Run(); err != nil {
		os.Exit(1)
	}
}
