// Command skincare answers ingredient, routine and compatibility questions
// from the terminal using the same query bus as the HTTP API.
//
// Usage:
//
//	skincare [--json] [--catalog file] <command> [args]
//
// Commands:
//
//	ingredient  - Show one ingredient by id, name or alias
//	list        - List ingredients, optionally for one concern
//	search      - Fuzzy search the catalog
//	check       - Check a set of ingredients for conflicts
//	explain     - Explain how two ingredients interact
//	compare     - Check whether two products can share a routine
//	analyze     - Break down one product's ingredient list
//	routine     - Build, analyze or suggest routines
//	ask         - Ask a free-text question
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := execute(nil, nil); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("Error:"), describeError(err))
		os.Exit(1)
	}
}
