package framegraph

import (
	"fmt"
	"slices"
)

// ImageAlias is the logical name of an image, independent of the physical
// texture backing it. The set is closed: adding a logical image means adding
// a constant here.
type ImageAlias uint8

// Image aliases.
const (
	ImageSceneColor ImageAlias = iota
	ImageDepth
	ImageGeometryColor
	ImageShadowMap
	ImageSwapchain

	imageAliasCount
)

var imageAliasNames = [...]string{
	ImageSceneColor:    "SceneColor",
	ImageDepth:         "Depth",
	ImageGeometryColor: "GeometryColor",
	ImageShadowMap:     "ShadowMap",
	ImageSwapchain:     "Swapchain",
}

// String returns the alias name.
func (a ImageAlias) String() string {
	if a < imageAliasCount {
		return imageAliasNames[a]
	}
	return fmt.Sprintf("ImageAlias(%d)", uint8(a))
}

// Valid reports whether a is one of the declared image aliases.
func (a ImageAlias) Valid() bool { return a < imageAliasCount }

// ParseImageAlias returns the image alias with the given name.
func ParseImageAlias(name string) (ImageAlias, error) {
	for i, n := range imageAliasNames {
		if n == name {
			return ImageAlias(i), nil
		}
	}
	return 0, fmt.Errorf("image alias %q: %w", name, ErrUnknownAlias)
}

// ImageAliases returns every declared image alias.
func ImageAliases() []ImageAlias {
	out := make([]ImageAlias, imageAliasCount)
	for i := range out {
		out[i] = ImageAlias(i)
	}
	return out
}

// BufferAlias is the logical name of a buffer.
type BufferAlias uint8

// Buffer aliases.
const (
	BufferIndirectCommand BufferAlias = iota
	BufferInstance
	BufferVisibility
	BufferLight

	bufferAliasCount
)

var bufferAliasNames = [...]string{
	BufferIndirectCommand: "IndirectCommand",
	BufferInstance:        "Instance",
	BufferVisibility:      "Visibility",
	BufferLight:           "Light",
}

// String returns the alias name.
func (a BufferAlias) String() string {
	if a < bufferAliasCount {
		return bufferAliasNames[a]
	}
	return fmt.Sprintf("BufferAlias(%d)", uint8(a))
}

// Valid reports whether a is one of the declared buffer aliases.
func (a BufferAlias) Valid() bool { return a < bufferAliasCount }

// ParseBufferAlias returns the buffer alias with the given name.
func ParseBufferAlias(name string) (BufferAlias, error) {
	for i, n := range bufferAliasNames {
		if n == name {
			return BufferAlias(i), nil
		}
	}
	return 0, fmt.Errorf("buffer alias %q: %w", name, ErrUnknownAlias)
}

// BufferAliases returns every declared buffer alias.
func BufferAliases() []BufferAlias {
	out := make([]BufferAlias, bufferAliasCount)
	for i := range out {
		out[i] = BufferAlias(i)
	}
	return out
}

// AliasRegistry is the set of aliases a frame graph is configured with.
// It is built once and read-only afterwards; the frame graph passes it by
// reference to validation instead of consulting a global table.
type AliasRegistry struct {
	images  [imageAliasCount]bool
	buffers [bufferAliasCount]bool
}

// NewAliasRegistry creates a registry containing the given aliases.
// Invalid aliases are rejected with ErrUnknownAlias.
func NewAliasRegistry(images []ImageAlias, buffers []BufferAlias) (*AliasRegistry, error) {
	r := &AliasRegistry{}
	for _, a := range images {
		if !a.Valid() {
			return nil, fmt.Errorf("%v: %w", a, ErrUnknownAlias)
		}
		r.images[a] = true
	}
	for _, a := range buffers {
		if !a.Valid() {
			return nil, fmt.Errorf("%v: %w", a, ErrUnknownAlias)
		}
		r.buffers[a] = true
	}
	return r, nil
}

// DefaultAliasRegistry returns a registry containing every declared alias.
func DefaultAliasRegistry() *AliasRegistry {
	r, _ := NewAliasRegistry(ImageAliases(), BufferAliases())
	return r
}

// HasImage reports whether a is registered.
func (r *AliasRegistry) HasImage(a ImageAlias) bool {
	return a.Valid() && r.images[a]
}

// HasBuffer reports whether a is registered.
func (r *AliasRegistry) HasBuffer(a BufferAlias) bool {
	return a.Valid() && r.buffers[a]
}

// Images returns the registered image aliases in declaration order.
func (r *AliasRegistry) Images() []ImageAlias {
	out := ImageAliases()
	return slices.DeleteFunc(out, func(a ImageAlias) bool { return !r.images[a] })
}

// Buffers returns the registered buffer aliases in declaration order.
func (r *AliasRegistry) Buffers() []BufferAlias {
	out := BufferAliases()
	return slices.DeleteFunc(out, func(a BufferAlias) bool { return !r.buffers[a] })
}

// Check returns ErrUnknownAlias if info uses an alias outside the registry.
func (r *AliasRegistry) Check(info PassGraphInfo) error {
	for _, u := range info.ImageReads {
		if !r.HasImage(u.Alias) {
			return fmt.Errorf("image read of %v: %w", u.Alias, ErrUnknownAlias)
		}
	}
	for _, u := range info.ImageWrites {
		if !r.HasImage(u.Alias) {
			return fmt.Errorf("image write of %v: %w", u.Alias, ErrUnknownAlias)
		}
	}
	for _, u := range info.BufferReads {
		if !r.HasBuffer(u.Alias) {
			return fmt.Errorf("buffer read of %v: %w", u.Alias, ErrUnknownAlias)
		}
	}
	for _, u := range info.BufferWrites {
		if !r.HasBuffer(u.Alias) {
			return fmt.Errorf("buffer write of %v: %w", u.Alias, ErrUnknownAlias)
		}
	}
	return nil
}
