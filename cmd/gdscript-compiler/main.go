// Command gdscript-compiler lexes, parses, analyzes, and lowers a single
// GDScript-like source file, emitting assembly, an object blob, or a
// native executable (spec.md §6).
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/gdscript-compiler/cmd/gdscript-compiler/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
