package framegraph

// WholeSize is the buffer range size meaning "from offset to the end".
const WholeSize = ^uint64(0)

// ImageUsage declares how a pass uses an image alias.
type ImageUsage struct {
	Alias  ImageAlias
	Access AccessFlags
	Stage  StageFlags
	Layout ImageLayout

	// Aspect defaults to AspectColor when zero.
	Aspect ImageAspect
}

func (u ImageUsage) aspect() ImageAspect {
	if u.Aspect == 0 {
		return AspectColor
	}
	return u.Aspect
}

// BufferUsage declares how a pass uses a buffer alias.
type BufferUsage struct {
	Alias  BufferAlias
	Access AccessFlags
	Stage  StageFlags

	// Offset and Size select the byte range. A zero Size means WholeSize.
	Offset uint64
	Size   uint64
}

func (u BufferUsage) size() uint64 {
	if u.Size == 0 {
		return WholeSize
	}
	return u.Size
}

// PassGraphInfo is everything a pass declares about its resource usage.
// A pass returns a fresh value from GraphInfo; the frame graph never shares
// or retains one across bakes.
type PassGraphInfo struct {
	ImageReads   []ImageUsage
	ImageWrites  []ImageUsage
	BufferReads  []BufferUsage
	BufferWrites []BufferUsage
}

// IsEmpty reports whether the pass declares no resource usage at all.
func (i PassGraphInfo) IsEmpty() bool {
	return len(i.ImageReads) == 0 && len(i.ImageWrites) == 0 &&
		len(i.BufferReads) == 0 && len(i.BufferWrites) == 0
}

// ReadImage appends an image read and returns the info for chaining.
func (i PassGraphInfo) ReadImage(alias ImageAlias, access AccessFlags, stage StageFlags, layout ImageLayout) PassGraphInfo {
	i.ImageReads = append(i.ImageReads, ImageUsage{Alias: alias, Access: access, Stage: stage, Layout: layout})
	return i
}

// WriteImage appends an image write and returns the info for chaining.
func (i PassGraphInfo) WriteImage(alias ImageAlias, access AccessFlags, stage StageFlags, layout ImageLayout) PassGraphInfo {
	i.ImageWrites = append(i.ImageWrites, ImageUsage{Alias: alias, Access: access, Stage: stage, Layout: layout})
	return i
}

// ReadBuffer appends a whole-buffer read and returns the info for chaining.
func (i PassGraphInfo) ReadBuffer(alias BufferAlias, access AccessFlags, stage StageFlags) PassGraphInfo {
	i.BufferReads = append(i.BufferReads, BufferUsage{Alias: alias, Access: access, Stage: stage})
	return i
}

// WriteBuffer appends a whole-buffer write and returns the info for chaining.
func (i PassGraphInfo) WriteBuffer(alias BufferAlias, access AccessFlags, stage StageFlags) PassGraphInfo {
	i.BufferWrites = append(i.BufferWrites, BufferUsage{Alias: alias, Access: access, Stage: stage})
	return i
}
