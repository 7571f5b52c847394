package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/record"
)

// parseSource maps a command line argument to a record source. URLs are
// fetched, everything else is read from disk.
func parseSource(raw string) record.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return record.SourceFromURL(path)
	}
	return record.SourceFromFile(path)
}

// sourceArgs returns the positional arguments, falling back to $GOFILE so a
// bare "//go:generate buildergen generate" targets the declaring file.
func sourceArgs(args []string) ([]record.Source, error) {
	if len(args) == 0 {
		if gofile := os.Getenv("GOFILE"); gofile != "" {
			args = []string{gofile}
		}
	}
	if len(args) == 0 {
		return nil, errors.New("no input files: pass paths or run through go generate")
	}
	out := make([]record.Source, 0, len(args))
	for _, arg := range args {
		src := parseSource(arg)
		if src == nil {
			return nil, errors.New("empty input path")
		}
		out = append(out, src)
	}
	return out, nil
}
