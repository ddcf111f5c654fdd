package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// render writes v as JSON or YAML, or calls text for the text format.
func render(w io.Writer, v any, text func(io.Writer) error) error {
	switch outputFlag {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return text(w)
}

// renderBool prints a check result, coloured in text mode.
func renderBool(w io.Writer, key string, ok bool) error {
	return render(w, map[string]bool{key: ok}, func(w io.Writer) error {
		s := color.RedString("false")
		if ok {
			s = color.GreenString("true")
		}
		_, err := fmt.Fprintln(w, s)
		return err
	})
}
