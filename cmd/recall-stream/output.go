package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/usestring/recall-stream/internal/render"
	"github.com/usestring/recall-stream/pkg/types"
)

type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
	outputHTML outputFormat = "html"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case outputText, outputJSON, outputYAML, outputHTML:
		return f, nil
	case "":
		return outputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, yaml, html)", s)
	}
}

// writeOutput writes the final report for snap in format f.
func writeOutput(w io.Writer, f outputFormat, snap types.Snapshot, printer *render.Printer) error {
	switch f {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(snap)

	case outputYAML:
		// Round-trip through JSON so keys match the JSON field names.
		v, err := types.ToAny(snap)
		if err != nil {
			return fmt.Errorf("converting snapshot: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	case outputHTML:
		return render.HTML(w, snap)

	default:
		return printer.Text(w, snap)
	}
}
