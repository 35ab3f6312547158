// Command podgen generates C++, C#, Java and Go types from Enum and Record
// templates.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/syssam/podgen/cmd/podgen/commands"
	"github.com/syssam/podgen/internal/logger"
)

func main() {
	err := commands.NewRootCmd().Execute()
	logger.Cleanup()
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(1)
}
