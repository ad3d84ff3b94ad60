// Package config loads declarative frame graph descriptions.
//
// A description lists passes with their image and buffer usage and,
// optionally, explicit ordering constraints and a representative kind of
// work. It can be written in HCL or YAML:
//
//	strategy = "topological"
//	present  = image.Swapchain
//
//	pass "Forward" {
//	  work = "draw"
//	  image_write {
//	    alias  = image.GeometryColor
//	    access = access.color_attachment_write
//	    stage  = stage.color_attachment_output
//	    layout = layout.color_attachment
//	  }
//	}
//
// In HCL the variables image, buffer, access, stage, layout and aspect hold
// every known name, and flags(a, b, ...) combines flag names. In YAML the
// same fields are plain strings, with flag combinations written "a|b".
//
// Load parses and validates a file; Build turns the result into a
// framegraph.FrameGraph.
package config
