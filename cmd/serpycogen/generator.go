package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"
)

// Generator builds and runs the one-shot driver program described at the
// top of main.go.
type Generator struct {
	PkgPath string
	Type    string
	Many    bool
	Verbose bool
}

var driverTemplate = template.Must(template.New("driver").Parse(`// Code generated by serpycogen. DO NOT EDIT.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	target {{printf "%q" .PkgPath}}
	"github.com/grignards/serpyco"
)

func main() {
	t := reflect.TypeOf(target.{{.Type}}{})
	ser, err := serpyco.NewSerializer(t, serpyco.Config{Many: {{.Many}}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "serpycogen driver: %v\n", err)
		os.Exit(1)
	}
	out, err := json.MarshalIndent(ser.Schema(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "serpycogen driver: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
`))

// Run writes the driver program to a scratch directory under the system
// temp directory,
// then `go run`s it, returning its stdout (the compiled schema as JSON).
func (g *Generator) Run() ([]byte, error) {
	dir, err := os.MkdirTemp("", "serpycogen-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	driverPath := filepath.Join(dir, "main.go")
	var buf bytes.Buffer
	if err := driverTemplate.Execute(&buf, g); err != nil {
		return nil, fmt.Errorf("render driver source: %w", err)
	}
	if err := os.WriteFile(driverPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write driver source: %w", err)
	}

	if g.Verbose {
		fmt.Fprintf(os.Stderr, "serpycogen: generated driver for %s.%s at %s\n", g.PkgPath, g.Type, driverPath)
	}

	cmd := exec.Command("go", "run", driverPath)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("driver failed: %s", ee.Stderr)
		}
		return nil, fmt.Errorf("run driver: %w", err)
	}
	return out, nil
}
