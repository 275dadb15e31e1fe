package main

import (
	"fmt"

	"hlbcgo/internal/hlbytecode"
)

// loadModule reads a HashLink bytecode file into a Module.
//
// Parsing the on-disk .hl container (header, pool deserialization,
// opcode decoding) is explicitly out of scope for this repo: spec.md
// names bytecode parsing and pool resolution as an external
// collaborator the decompiler core only ever reads from, never
// produces. This function is the one place that boundary is visible on
// the CLI's critical path; it is left unimplemented rather than faked
// with a partial reader, so that boundary stays honest instead of
// silently papered over.
func loadModule(path string) (*hlbytecode.Module, error) {
	return nil, fmt.Errorf("loading %q: bytecode file parsing is not implemented; construct a hlbytecode.Module directly", path)
}
