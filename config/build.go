package config

import (
	"fmt"

	"github.com/gogpu/framegraph"
)

// Build creates a frame graph from a validated description. The file's
// strategy, present image and alias restriction are applied first, so opts
// can override them. Passes are added in file order and every After entry
// becomes an explicit dependency.
//
// Alias errors wrap framegraph.ErrUnknownAlias; dependencies on undeclared
// passes surface from Bake as framegraph.ErrUnknownPass.
func Build(f *File, opts ...framegraph.Option) (*framegraph.FrameGraph, error) {
	base, err := f.options()
	if err != nil {
		return nil, err
	}
	fg := framegraph.New(append(base, opts...)...)

	for _, ps := range f.Passes {
		p, err := ps.Pass()
		if err != nil {
			return nil, err
		}
		if err := fg.AddPass(p); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		for _, before := range ps.After {
			fg.AddDependency(framegraph.PassID(before), p.ID())
		}
	}
	return fg, nil
}

func (f *File) options() ([]framegraph.Option, error) {
	var opts []framegraph.Option

	strategy, err := framegraph.ParseStrategy(f.Strategy)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	opts = append(opts, framegraph.WithStrategy(strategy))

	if f.Present != "" {
		alias, err := framegraph.ParseImageAlias(f.Present)
		if err != nil {
			return nil, fmt.Errorf("config: present: %w", err)
		}
		opts = append(opts, framegraph.WithPresentImage(alias))
	}

	if len(f.Images) > 0 || len(f.Buffers) > 0 {
		images := framegraph.ImageAliases()
		if len(f.Images) > 0 {
			images = images[:0]
			for _, name := range f.Images {
				a, err := framegraph.ParseImageAlias(name)
				if err != nil {
					return nil, fmt.Errorf("config: images: %w", err)
				}
				images = append(images, a)
			}
		}
		buffers := framegraph.BufferAliases()
		if len(f.Buffers) > 0 {
			buffers = buffers[:0]
			for _, name := range f.Buffers {
				a, err := framegraph.ParseBufferAlias(name)
				if err != nil {
					return nil, fmt.Errorf("config: buffers: %w", err)
				}
				buffers = append(buffers, a)
			}
		}
		reg, err := framegraph.NewAliasRegistry(images, buffers)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, framegraph.WithAliasRegistry(reg))
	}
	return opts, nil
}

// GraphInfo converts the pass's usage lists.
func (ps PassSpec) GraphInfo() (framegraph.PassGraphInfo, error) {
	var info framegraph.PassGraphInfo
	var err error
	if info.ImageReads, err = imageUsages(ps.ImageReads); err != nil {
		return info, fmt.Errorf("config: pass %q: image_read: %w", ps.Name, err)
	}
	if info.ImageWrites, err = imageUsages(ps.ImageWrites); err != nil {
		return info, fmt.Errorf("config: pass %q: image_write: %w", ps.Name, err)
	}
	if info.BufferReads, err = bufferUsages(ps.BufferReads); err != nil {
		return info, fmt.Errorf("config: pass %q: buffer_read: %w", ps.Name, err)
	}
	if info.BufferWrites, err = bufferUsages(ps.BufferWrites); err != nil {
		return info, fmt.Errorf("config: pass %q: buffer_write: %w", ps.Name, err)
	}
	return info, nil
}

// Pass builds a framegraph.Pass that declares the pass's usage and records
// its Work each frame.
func (ps PassSpec) Pass() (framegraph.Pass, error) {
	info, err := ps.GraphInfo()
	if err != nil {
		return nil, err
	}
	record, err := ps.recordFunc(info)
	if err != nil {
		return nil, err
	}
	return framegraph.NewPass(framegraph.PassID(ps.Name), info, record), nil
}

func imageUsages(specs []ImageSpec) ([]framegraph.ImageUsage, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]framegraph.ImageUsage, len(specs))
	for i, s := range specs {
		alias, err := framegraph.ParseImageAlias(s.Alias)
		if err != nil {
			return nil, err
		}
		access, err := framegraph.ParseAccessFlags(s.Access)
		if err != nil {
			return nil, err
		}
		stage, err := framegraph.ParseStageFlags(s.Stage)
		if err != nil {
			return nil, err
		}
		layout, err := framegraph.ParseImageLayout(s.Layout)
		if err != nil {
			return nil, err
		}
		aspect, err := framegraph.ParseImageAspect(s.Aspect)
		if err != nil {
			return nil, err
		}
		out[i] = framegraph.ImageUsage{Alias: alias, Access: access, Stage: stage, Layout: layout, Aspect: aspect}
	}
	return out, nil
}

func bufferUsages(specs []BufferSpec) ([]framegraph.BufferUsage, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]framegraph.BufferUsage, len(specs))
	for i, s := range specs {
		alias, err := framegraph.ParseBufferAlias(s.Alias)
		if err != nil {
			return nil, err
		}
		access, err := framegraph.ParseAccessFlags(s.Access)
		if err != nil {
			return nil, err
		}
		stage, err := framegraph.ParseStageFlags(s.Stage)
		if err != nil {
			return nil, err
		}
		out[i] = framegraph.BufferUsage{Alias: alias, Access: access, Stage: stage, Offset: s.Offset, Size: s.Size}
	}
	return out, nil
}
