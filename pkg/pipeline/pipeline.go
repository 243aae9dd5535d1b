// Package pipeline provides the export pipeline for landmark graphs.
//
// This package implements the complete load → reduce → number → emit
// pipeline used by the CLI and the HTTP server. By centralizing this logic,
// both entry points produce identical exports.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read a landmark description (file or bytes) into a graph
//  2. Reduce: Apply the requested reduction passes (drop disjunctive or
//     conjunctive landmarks, drop weak orderings, break cycles)
//  3. Number: Assign dense landmark ids
//  4. Emit: Produce the requested formats and write them to the output
//     directory
//
// Rendering through Graphviz is cached by the hash of the DOT source, so an
// unchanged graph is rendered once.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "task.toml",
//	    OutputDir: "out",
//	    Formats:   []string{"json", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Files["json"])
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	lmerrors "github.com/matzehuels/lmgraph/pkg/errors"
	lmio "github.com/matzehuels/lmgraph/pkg/io"
	"github.com/matzehuels/lmgraph/pkg/landmarks"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// TTLRender bounds how long rendered diagrams stay cached.
	TTLRender = 7 * 24 * time.Hour
)

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// rendered formats go through Graphviz and the cache.
var rendered = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// Options contains all configuration for the export pipeline.
type Options struct {
	// Load options. Description takes precedence over Input.
	Input       string      `json:"input,omitempty"`
	Description []byte      `json:"-"`
	Format      lmio.Format `json:"format,omitempty"`

	// Reduce options
	DiscardDisjunctive bool   `json:"discard_disjunctive,omitempty"`
	DiscardConjunctive bool   `json:"discard_conjunctive,omitempty"`
	MinOrdering        string `json:"min_ordering,omitempty"`
	Acyclic            bool   `json:"acyclic,omitempty"`

	// Emit options
	OutputDir string   `json:"output_dir,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	minOrdering landmarks.EdgeType
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Loaded is the imported graph after reduction and numbering.
	Loaded *lmio.Loaded

	// DOT is the Graphviz source of the final graph.
	DOT string

	// Artifacts contains emitted outputs keyed by format.
	Artifacts map[string][]byte

	// Files maps formats to written paths. Empty without an output directory.
	Files map[string]string

	Stats     Stats
	CacheInfo CacheInfo
}

// CacheInfo tracks cache use of the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all rendered formats came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return lmerrors.New(lmerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks required fields and applies defaults. It is idempotent.
func (o *Options) Validate() error {
	if o.Description == nil && o.Input == "" {
		return lmerrors.New(lmerrors.ErrCodeInvalidInput, "input file or description is required")
	}
	if o.Format == "" {
		o.Format = lmio.FormatTOML
		if o.Description == nil {
			o.Format = lmio.FormatFromPath(o.Input)
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.MinOrdering != "" {
		t, err := landmarks.ParseEdgeType(o.MinOrdering)
		if err != nil {
			return lmerrors.Wrap(lmerrors.ErrCodeInvalidInput, err, "min ordering")
		}
		o.minOrdering = t
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.OutputDir != "" {
		if err := lmerrors.ValidatePath(o.OutputDir); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// NeedsRender reports whether any requested format goes through Graphviz.
func (o *Options) NeedsRender() bool {
	return slices.ContainsFunc(o.Formats, func(f string) bool { return rendered[f] })
}

// source names the input in logs and hooks.
func (o *Options) source() string {
	if o.Description != nil {
		return fmt.Sprintf("<%d bytes of %s>", len(o.Description), o.Format)
	}
	return o.Input
}
