// Package serpyco compiles a reflected Go struct description into a JSON
// Schema draft-04 document, a bidirectional converter between struct values
// and a language-neutral Value tree, and a validator for that schema.
//
// Credit to https://github.com/kaptinlin/jsonschema for format validators
// and the overall package shape this module grew out of.
package serpyco
