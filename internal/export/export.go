// Package export renders scored reports for people and machines.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatXML   Format = "xml"
	FormatHuman Format = "human"
)

// ParseFormat accepts a format name case-insensitively; "yml" is an alias
// for yaml and the empty string means json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml":
		return FormatXML, nil
	case "human", "text":
		return FormatHuman, nil
	}
	return "", fmt.Errorf("unsupported format %q: must be json, yaml, xml or human", s)
}

// ContentType is the MIME type used when serving the format over HTTP.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatXML:
		return "application/xml; charset=utf-8"
	case FormatHuman:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Extension is the file suffix for downloads.
func (f Format) Extension() string {
	if f == FormatHuman {
		return "txt"
	}
	return string(f)
}

// Item is one report in a batch, labelled with where its snapshot came from.
type Item struct {
	Source string        `json:"source" yaml:"source"`
	Report models.Report `json:"report" yaml:"report"`
}

// Renderer writes reports. Color only affects the human format and is off
// in the zero value.
type Renderer struct {
	Color bool
}

// Render writes a single report without color.
func Render(w io.Writer, r models.Report, f Format) error {
	return Renderer{}.Render(w, r, f)
}

// RenderBatch writes several reports as one document without color.
func RenderBatch(w io.Writer, items []Item, f Format) error {
	return Renderer{}.RenderBatch(w, items, f)
}

// Render writes a single report.
func (rd Renderer) Render(w io.Writer, r models.Report, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatXML:
		return writeXML(w, []Item{{Report: r}}, false)
	case FormatHuman:
		writeHuman(w, r, palette{enabled: rd.Color})
		return nil
	}
	return fmt.Errorf("unsupported format %q", f)
}

// RenderBatch writes several reports as one document.
func (rd Renderer) RenderBatch(w io.Writer, items []Item, f Format) error {
	p := palette{enabled: rd.Color}
	switch f {
	case FormatJSON:
		return writeJSON(w, items)
	case FormatYAML:
		return writeYAML(w, items)
	case FormatXML:
		return writeXML(w, items, true)
	case FormatHuman:
		for i, it := range items {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if it.Source != "" {
				p.color(color.FgHiBlack).Fprintf(w, "==> %s <==\n", it.Source)
			}
			writeHuman(w, it.Report, p)
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q", f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// ratio renders the no-short-term-debt sentinel as infinity.
func ratio(v float64) string {
	if v >= analysis.NoShortTermDebt {
		return "∞"
	}
	return fmt.Sprintf("%.2f", v)
}
