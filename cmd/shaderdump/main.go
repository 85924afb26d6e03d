// Command shaderdump prints the interface reflection data of a shader.
//
// It accepts either a WGSL source file, which is parsed and reflected,
// or a previously serialized binary description payload. The reflection
// data is printed as JSON; -o additionally writes the binary form.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/shaderdesc"
	"github.com/gogpu/shaderdesc/introspect"
)

func main() {
	var (
		entry  = flag.String("entry", "", "entry point to reflect (defaults to the only one)")
		output = flag.String("o", "", "write the binary description payload to this file")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: shaderdump [flags] shader.wgsl|payload.bin\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	var desc shaderdesc.ShaderDescription
	if strings.HasSuffix(path, ".wgsl") {
		var err error
		desc, err = reflectWGSL(path, *entry)
		if err != nil {
			log.Fatalf("Failed to reflect %s: %v", path, err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}
		desc = shaderdesc.New()
		if err := desc.Deserialize(data); err != nil {
			log.Fatalf("Failed to decode %s: %v", path, err)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, desc.Serialize(), 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", *output, err)
		}
	}

	fmt.Println(string(desc.ToJSON()))
}

func reflectWGSL(path, entry string) (shaderdesc.ShaderDescription, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return shaderdesc.ShaderDescription{}, err
	}

	ast, err := naga.Parse(string(source))
	if err != nil {
		return shaderdesc.ShaderDescription{}, fmt.Errorf("parse: %w", err)
	}
	module, err := naga.LowerWithSource(ast, string(source))
	if err != nil {
		return shaderdesc.ShaderDescription{}, fmt.Errorf("lower: %w", err)
	}

	if entry == "" {
		if len(module.EntryPoints) != 1 {
			names := make([]string, len(module.EntryPoints))
			for i, ep := range module.EntryPoints {
				names[i] = ep.Name
			}
			return shaderdesc.ShaderDescription{}, fmt.Errorf("shader has %d entry points (%s), pick one with -entry", len(module.EntryPoints), strings.Join(names, ", "))
		}
		entry = module.EntryPoints[0].Name
	}
	return introspect.EntryPoint(module, entry)
}
