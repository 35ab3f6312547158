// testgen generates a small template set in every target language.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/compiler/gen/cpp"
	"github.com/syssam/podgen/compiler/gen/csharp"
	"github.com/syssam/podgen/compiler/gen/golang"
	"github.com/syssam/podgen/compiler/gen/java"
	"github.com/syssam/podgen/compiler/load"
)

var templates = []struct {
	name string
	doc  string
}{
	{"Color", `type: Enum
namespace: game
package: com.example.game
values: [Red, Green, Blue]
`},
	{"Vec2", `type: Record
namespace: game
package: com.example.game
generate_serialization: true
members:
  - {name: x, type: Float}
  - {name: y, type: Float}
`},
	{"Player", `type: Record
namespace: game
package: com.example.game
comment: A connected player.
generate_serialization: true
members:
  - {name: name, type: String, default: anonymous}
  - {name: color, type: Color, default: Green}
  - {name: position, type: Vec2}
  - {name: path, type: "List<Vec2>"}
  - {name: scores, type: "List<List<Integer>>"}
`},
}

func main() {
	outDir, err := os.MkdirTemp("", "podgen-testgen-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	schemas := make([]*load.Schema, 0, len(templates))
	for _, t := range templates {
		s, err := load.UnmarshalSchema(t.name, load.FormatYAML, []byte(t.doc))
		if err != nil {
			fmt.Fprintf(os.Stderr, "template %s: %v\n", t.name, err)
			os.Exit(1)
		}
		schemas = append(schemas, s)
	}

	config, err := gen.NewConfig(
		gen.WithTarget(cpp.New(), filepath.Join(outDir, "cpp")),
		gen.WithTarget(csharp.New(), filepath.Join(outDir, "csharp")),
		gen.WithTarget(java.New(), filepath.Join(outDir, "java")),
		gen.WithTarget(golang.New(), filepath.Join(outDir, "go")),
		gen.WithGoImportBase("example.com/testgen"),
		gen.WithFeatures(gen.FeatureGoStringer),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
		os.Exit(1)
	}
	graph, err := gen.NewGraph(config, schemas...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create graph: %v\n", err)
		os.Exit(1)
	}
	for _, f := range graph.Failed {
		fmt.Fprintf(os.Stderr, "excluded %s: %v\n", f.Name, f.Err)
	}

	report, err := gen.Generate(context.Background(), graph)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}
	for _, o := range report.Failed {
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", o.Language, o.Type, o.Err)
	}

	fmt.Println("\nGenerated files:")
	for _, o := range report.Created {
		info, err := os.Stat(o.Path)
		if err != nil {
			continue
		}
		rel, _ := filepath.Rel(outDir, o.Path)
		fmt.Printf("  %-32s (%d bytes)\n", rel, info.Size())
	}

	sample := filepath.Join(outDir, "cpp", "Player.h")
	if content, err := os.ReadFile(sample); err == nil {
		fmt.Println("\n--- Sample: cpp/Player.h ---")
		fmt.Print(string(content))
	}
	fmt.Printf("\n%s\n", report.Summary())
}
