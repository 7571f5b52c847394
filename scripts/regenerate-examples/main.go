package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	buildergen "github.com/goliatone/go-buildergen"
	"github.com/goliatone/go-buildergen/pkg/config"
	"github.com/goliatone/go-buildergen/pkg/generator"
	"github.com/goliatone/go-buildergen/pkg/record"
)

var inputExts = []string{".go", ".yaml", ".yml", ".json"}

func main() {
	var (
		root  = flag.String("root", "examples", "directory holding the example packages")
		check = flag.Bool("check", false, "report stale builders instead of rewriting them")
	)
	flag.Parse()

	inputs, err := exampleInputs(*root, config.Default().Output.Suffix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list examples: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	gen := buildergen.NewGenerator()
	stale := 0
	for _, input := range inputs {
		res, err := gen.Generate(ctx, generator.Request{Source: record.SourceFromFile(input)})
		if errors.Is(err, generator.ErrNoRecords) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to generate %s: %v\n", input, err)
			os.Exit(1)
		}

		current, err := os.ReadFile(res.Path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", res.Path, err)
			os.Exit(1)
		}
		if bytes.Equal(current, res.Source) {
			continue
		}
		if *check {
			fmt.Printf("✗ %s is stale\n", res.Path)
			stale++
			continue
		}
		if err := os.WriteFile(res.Path, res.Source, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", res.Path, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Wrote %s\n", res.Path)
	}
	if stale > 0 {
		os.Exit(1)
	}
}

// exampleInputs lists every description under root, skipping tests and the
// builders generated from them.
func exampleInputs(root, generatedSuffix string) ([]string, error) {
	var inputs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := d.Name()
		switch {
		case strings.HasSuffix(name, "_test.go"), strings.HasSuffix(name, generatedSuffix):
			return nil
		case slices.Contains(inputExts, filepath.Ext(name)):
			inputs = append(inputs, path)
		}
		return nil
	})
	return inputs, err
}
