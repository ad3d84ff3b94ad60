package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/framegraph"
)

var (
	// ErrInvalid is returned when a description fails validation.
	ErrInvalid = errors.New("config: invalid frame graph description")

	// ErrFormat is returned for files with an unsupported extension.
	ErrFormat = errors.New("config: unsupported file format")
)

// File is a decoded frame graph description.
type File struct {
	// Strategy is "topological" (default) or "declaration".
	Strategy string `hcl:"strategy,optional" yaml:"strategy" validate:"omitempty,strategy"`

	// Present names the image transitioned for presentation after the
	// last pass. Empty disables the transition.
	Present string `hcl:"present,optional" yaml:"present" validate:"omitempty,image_alias"`

	// Images and Buffers restrict the aliases passes may use. Empty means
	// every declared alias.
	Images  []string `hcl:"images,optional" yaml:"images" validate:"dive,image_alias"`
	Buffers []string `hcl:"buffers,optional" yaml:"buffers" validate:"dive,buffer_alias"`

	Passes []PassSpec `hcl:"pass,block" yaml:"passes" validate:"unique=Name,dive"`
}

// PassSpec describes one pass.
type PassSpec struct {
	Name string `hcl:"name,label" yaml:"name" validate:"required"`

	// After lists passes that must run before this one regardless of
	// resource usage.
	After []string `hcl:"after,optional" yaml:"after" validate:"dive,required"`

	// Work is the command the pass records each frame: draw,
	// draw_indirect, dispatch, dispatch_indirect or copy. Empty records
	// nothing.
	Work string `hcl:"work,optional" yaml:"work" validate:"omitempty,oneof=draw draw_indirect dispatch dispatch_indirect copy"`

	// Groups is the dispatch size; it defaults to 1 1 1.
	Groups []uint32 `hcl:"groups,optional" yaml:"groups" validate:"omitempty,len=3,dive,min=1"`

	ImageReads   []ImageSpec  `hcl:"image_read,block" yaml:"image_reads" validate:"dive"`
	ImageWrites  []ImageSpec  `hcl:"image_write,block" yaml:"image_writes" validate:"dive"`
	BufferReads  []BufferSpec `hcl:"buffer_read,block" yaml:"buffer_reads" validate:"dive"`
	BufferWrites []BufferSpec `hcl:"buffer_write,block" yaml:"buffer_writes" validate:"dive"`
}

// ImageSpec is one image usage.
type ImageSpec struct {
	Alias  string `hcl:"alias" yaml:"alias" validate:"required,image_alias"`
	Access string `hcl:"access,optional" yaml:"access" validate:"access_flags"`
	Stage  string `hcl:"stage" yaml:"stage" validate:"required,stage_flags"`
	Layout string `hcl:"layout" yaml:"layout" validate:"required,image_layout"`
	Aspect string `hcl:"aspect,optional" yaml:"aspect" validate:"omitempty,image_aspect"`
}

// BufferSpec is one buffer usage. A zero Size covers the whole buffer.
type BufferSpec struct {
	Alias  string `hcl:"alias" yaml:"alias" validate:"required,buffer_alias"`
	Access string `hcl:"access,optional" yaml:"access" validate:"access_flags"`
	Stage  string `hcl:"stage" yaml:"stage" validate:"required,stage_flags"`
	Offset uint64 `hcl:"offset,optional" yaml:"offset"`
	Size   uint64 `hcl:"size,optional" yaml:"size"`
}

// Load reads, decodes and validates the description at path. The format
// follows the extension: .hcl, .yaml or .yml.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var f *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		f, err = ParseHCL(data, path)
	case ".yaml", ".yml":
		f, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	framegraph.Logger().Debug("config: loaded",
		"path", path, "passes", len(f.Passes), "strategy", f.Strategy)
	return f, nil
}

// ParseHCL decodes an HCL description. filename is used in diagnostics.
// The result is not validated.
func ParseHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to parse %s: %w", filename, diags)
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to decode %s: %w", filename, diags)
	}
	return &f, nil
}

// ParseYAML decodes a YAML description. Unknown fields are rejected. The
// result is not validated.
func ParseYAML(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: failed to decode yaml: %w", err)
	}
	return &f, nil
}
