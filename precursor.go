package framegraph

import "fmt"

// AccessMode says whether a usage reads or writes its alias.
type AccessMode uint8

const (
	// AccessRead marks a usage taken from a pass's read declarations.
	AccessRead AccessMode = iota
	// AccessWrite marks a usage taken from a pass's write declarations.
	AccessWrite
)

// String returns the string representation of AccessMode.
func (m AccessMode) String() string {
	switch m {
	case AccessRead:
		return "Read"
	case AccessWrite:
		return "Write"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ImagePrecursor is the state a pass needs an image to be in. Paired with
// the image's last use it decides whether a barrier is required.
type ImagePrecursor struct {
	Alias  ImageAlias
	Mode   AccessMode
	Access AccessFlags
	Stage  StageFlags
	Layout ImageLayout
	Aspect ImageAspect
}

// BufferPrecursor is the state a pass needs a buffer to be in.
type BufferPrecursor struct {
	Alias  BufferAlias
	Mode   AccessMode
	Access AccessFlags
	Stage  StageFlags
	Offset uint64
	Size   uint64
}

// PassPrecursors holds one pass's precursors, images and buffers apart.
type PassPrecursors struct {
	Images  []ImagePrecursor
	Buffers []BufferPrecursor
}

// PrecursorPlan maps each pass to its ordered precursors.
type PrecursorPlan map[PassID]PassPrecursors

// PassPrecursorsFor expands one pass's declarations into precursors:
// reads first, then writes, in declaration order.
func PassPrecursorsFor(info PassGraphInfo) PassPrecursors {
	out := PassPrecursors{
		Images:  make([]ImagePrecursor, 0, len(info.ImageReads)+len(info.ImageWrites)),
		Buffers: make([]BufferPrecursor, 0, len(info.BufferReads)+len(info.BufferWrites)),
	}
	for _, u := range info.ImageReads {
		out.Images = append(out.Images, imagePrecursor(u, AccessRead))
	}
	for _, u := range info.ImageWrites {
		out.Images = append(out.Images, imagePrecursor(u, AccessWrite))
	}
	for _, u := range info.BufferReads {
		out.Buffers = append(out.Buffers, bufferPrecursor(u, AccessRead))
	}
	for _, u := range info.BufferWrites {
		out.Buffers = append(out.Buffers, bufferPrecursor(u, AccessWrite))
	}
	return out
}

func imagePrecursor(u ImageUsage, mode AccessMode) ImagePrecursor {
	return ImagePrecursor{
		Alias:  u.Alias,
		Mode:   mode,
		Access: u.Access,
		Stage:  u.Stage,
		Layout: u.Layout,
		Aspect: u.aspect(),
	}
}

func bufferPrecursor(u BufferUsage, mode AccessMode) BufferPrecursor {
	return BufferPrecursor{
		Alias:  u.Alias,
		Mode:   mode,
		Access: u.Access,
		Stage:  u.Stage,
		Offset: u.Offset,
		Size:   u.size(),
	}
}

// GeneratePrecursors expands every pass in order into its precursors.
// No cross-pass state is consulted. A pass in order without an entry in
// infos is reported as ErrUnknownPass.
func GeneratePrecursors(order []PassID, infos map[PassID]PassGraphInfo) (PrecursorPlan, error) {
	plan := make(PrecursorPlan, len(order))
	for _, id := range order {
		info, ok := infos[id]
		if !ok {
			return nil, fmt.Errorf("generate precursors for %q: %w", id, ErrUnknownPass)
		}
		plan[id] = PassPrecursorsFor(info)
	}
	return plan, nil
}
