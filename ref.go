package serpyco

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// resolveRef resolves a "$ref" against root's own "definitions", the only
// reference shape spec.md's compiler ever emits: "#" (the root schema
// itself) or "#/definitions/<name>". Cross-document and anchor-based refs
// are out of scope (Non-goals: this library never loads external schema
// documents).
func resolveRef(root *Schema, ref string) (*Schema, error) {
	if ref == "#" {
		return root, nil
	}
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("%w: unsupported $ref %q", ErrRefResolution, ref)
	}

	segments := jsonpointer.Parse(ref[1:])
	if len(segments) != 2 || segments[0] != "definitions" {
		return nil, fmt.Errorf("%w: unsupported $ref %q", ErrRefResolution, ref)
	}

	def, ok := root.Definitions[segments[1]]
	if !ok {
		return nil, fmt.Errorf("%w: no definition %q", ErrRefResolution, segments[1])
	}
	return def, nil
}
