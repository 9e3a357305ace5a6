package main

import (
	"os"

	"github.com/loopdesk/escalate/cmd/escalate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
