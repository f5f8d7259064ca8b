// Command serpycogen prints the compiled draft-04 JSON Schema for one
// exported struct type, given its package import path and type name.
//
// Usage:
//
//	serpycogen -pkg <import/path> -type <TypeName>
//
// Flags:
//
//	-pkg string      Import path of the package declaring the type
//	-type string     Exported type name within that package
//	-many            Wrap the schema as {type: "array", items: <schema>}
//	-verbose         Log each generation step
//
// serpycogen has no reflect.Type of its own to hand the library for an
// arbitrary import path: it generates a tiny driver program that imports
// both the target package and serpyco, builds a Serializer over the named
// type, and runs it with `go run`, relaying the driver's stdout. Neither
// teacher tool's own technique fits this command's job: cmd/schemagen
// never needs a live reflect.Type, so it gets away with a pure go/ast
// static analysis of the source (no go toolchain invocation at all); this
// command's NewSerializer call needs an actual Go value of the named type
// in hand, which only compiling and running real code against it can
// produce.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

var (
	pkgPath = flag.String("pkg", "", "import path of the package declaring the type")
	typ     = flag.String("type", "", "exported type name within that package")
	many    = flag.Bool("many", false, "wrap the schema as {type: \"array\", items: <schema>}")
	verbose = flag.Bool("verbose", false, "log each generation step")
)

func main() {
	flag.Parse()

	if *pkgPath == "" || *typ == "" {
		fmt.Fprintln(os.Stderr, "usage: serpycogen -pkg <import/path> -type <TypeName>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	gen := &Generator{
		PkgPath: *pkgPath,
		Type:    *typ,
		Many:    *many,
		Verbose: *verbose,
	}

	schema, err := gen.Run()
	if err != nil {
		log.Fatalf("serpycogen: %v", err)
	}

	fmt.Println(string(schema))
}
