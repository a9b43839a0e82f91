// Package convert turns a decoded collection into Markdown pages, one per
// resource/method pair, and accumulates the combined document.
package convert

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/blackcoderx/postman2md/pkg/collection"
	"github.com/blackcoderx/postman2md/pkg/markup"
)

// DefaultCombinedName is the file name of the combined document.
const DefaultCombinedName = "full.md"

// ArtifactWriter persists generated pages.
type ArtifactWriter interface {
	// EnsureDir creates the output location if it does not exist yet.
	EnsureDir() error
	// Write stores content under name, replacing anything already there.
	Write(name, content string) error
}

// Options configure a Converter.
type Options struct {
	// Extension is appended to page names. Defaults to DefaultExtension.
	Extension string
	// WriteCombined also persists the combined document.
	WriteCombined bool
	// CombinedName is the combined document's file name. Defaults to DefaultCombinedName.
	CombinedName string
	// Logger receives progress and warnings. Nil discards them.
	Logger *slog.Logger
}

// Artifact describes one written page.
type Artifact struct {
	Name     string
	Resource string
	Method   string
	Serial   int
}

// Result is the outcome of a conversion pass.
type Result struct {
	// Combined is the full document: title, variables and every page in order.
	Combined  string
	Artifacts []Artifact
	// Serial is the next serial number; it starts at 1 and grows per page.
	Serial   int
	Warnings int
}

// RunContext is the per-run state handed to the emitter.
type RunContext struct {
	Writer    ArtifactWriter
	Extension string
	Serial    int
	Combined  strings.Builder
	Artifacts []Artifact
}

// Converter renders collections and writes their pages.
type Converter struct {
	writer ArtifactWriter
	opts   Options
	log    *slog.Logger
}

// New creates a Converter writing through w.
func New(w ArtifactWriter, opts Options) *Converter {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.CombinedName == "" {
		opts.CombinedName = DefaultCombinedName
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Converter{writer: w, opts: opts, log: log}
}

// Run converts coll in one sequential pass. Only storage failures are returned;
// problems inside individual items are recovered by the renderer.
func (c *Converter) Run(coll *collection.Collection) (*Result, error) {
	renderer := markup.NewRenderer(c.log)
	rc := &RunContext{
		Writer:    c.writer,
		Extension: c.opts.Extension,
		Serial:    1,
	}

	rc.Combined.WriteString("# API Documentation\n\n")
	rc.Combined.WriteString(renderer.VariablesSection(coll.Variables))
	rc.Combined.WriteString("\n")

	for _, group := range GroupByName(SortItems(coll.Items)) {
		c.log.Info("exporting resource", "resource", group.Name)
		if err := c.emitGroup(rc, renderer, group); err != nil {
			return nil, err
		}
	}

	if c.opts.WriteCombined {
		if err := rc.Writer.Write(c.opts.CombinedName, rc.Combined.String()); err != nil {
			return nil, fmt.Errorf("failed to write combined document: %w", err)
		}
		c.log.Debug("combined document written", "name", c.opts.CombinedName)
	}

	return &Result{
		Combined:  rc.Combined.String(),
		Artifacts: rc.Artifacts,
		Serial:    rc.Serial,
		Warnings:  renderer.Warnings(),
	}, nil
}

// emitGroup writes one page per item of the group and appends each page to the
// combined document.
func (c *Converter) emitGroup(rc *RunContext, renderer *markup.Renderer, group Group) error {
	if err := rc.Writer.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, item := range group.Items {
		method := item.Request.Method
		c.log.Info("processing method", "resource", group.Name, "method", method)

		page := renderer.RequestSection(item) + renderer.ResponseSection(item) + "\n"
		name := ArtifactName(group.Name, method, rc.Extension)
		if err := rc.Writer.Write(name, page); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		c.log.Debug("artifact written", "name", name, "serial", rc.Serial)

		rc.Artifacts = append(rc.Artifacts, Artifact{
			Name:     name,
			Resource: group.Name,
			Method:   method,
			Serial:   rc.Serial,
		})
		rc.Serial++
		rc.Combined.WriteString(page)
	}
	return nil
}
