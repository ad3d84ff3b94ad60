package framegraph

// Usage helpers shared by the package tests.

func colorWrite(a ImageAlias) ImageUsage {
	return ImageUsage{
		Alias:  a,
		Access: AccessColorAttachmentWrite,
		Stage:  StageColorAttachmentOutput,
		Layout: LayoutColorAttachment,
	}
}

func sampledRead(a ImageAlias) ImageUsage {
	return ImageUsage{
		Alias:  a,
		Access: AccessShaderRead,
		Stage:  StageFragmentShader,
		Layout: LayoutShaderReadOnly,
	}
}

func storageWrite(a BufferAlias) BufferUsage {
	return BufferUsage{Alias: a, Access: AccessShaderWrite, Stage: StageComputeShader}
}

func indirectRead(a BufferAlias) BufferUsage {
	return BufferUsage{Alias: a, Access: AccessIndirectCommandRead, Stage: StageDrawIndirect}
}

// scenarioDecls is the Forward/Composition/Culling/PostProcessing frame.
func scenarioDecls() []PassDeclaration {
	return []PassDeclaration{
		{ID: "Forward", Info: PassGraphInfo{ImageWrites: []ImageUsage{colorWrite(ImageGeometryColor)}}},
		{ID: "Composition", Info: PassGraphInfo{ImageReads: []ImageUsage{sampledRead(ImageGeometryColor)}}},
		{ID: "Culling", Info: PassGraphInfo{BufferWrites: []BufferUsage{storageWrite(BufferIndirectCommand)}}},
		{ID: "PostProcessing", Info: PassGraphInfo{BufferReads: []BufferUsage{indirectRead(BufferIndirectCommand)}}},
	}
}

// recorderCall is one PipelineBarrier or marker call seen by fakeRecorder.
type recorderCall struct {
	kind    string // "barrier", "begin", "end", "work"
	pass    PassID
	images  []ImageBarrier
	buffers []BufferBarrier
}

// fakeRecorder records every call in order.
type fakeRecorder struct {
	calls []recorderCall
}

func (r *fakeRecorder) PipelineBarrier(images []ImageBarrier, buffers []BufferBarrier) {
	r.calls = append(r.calls, recorderCall{kind: "barrier", images: images, buffers: buffers})
}

func (r *fakeRecorder) BeginPass(id PassID) {
	r.calls = append(r.calls, recorderCall{kind: "begin", pass: id})
}

func (r *fakeRecorder) EndPass(id PassID) {
	r.calls = append(r.calls, recorderCall{kind: "end", pass: id})
}

func (r *fakeRecorder) work(id PassID) {
	r.calls = append(r.calls, recorderCall{kind: "work", pass: id})
}

// workPass returns a pass that logs a "work" call on a *fakeRecorder.
func workPass(id PassID, info PassGraphInfo) Pass {
	return NewPass(id, info, func(_ *FrameContext, cmd CommandRecorder) {
		if r, ok := cmd.(*fakeRecorder); ok {
			r.work(id)
		}
	})
}
