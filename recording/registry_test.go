package recording_test

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/framegraph/recording"
	"github.com/gogpu/framegraph/recording/backends/hal"
	"github.com/gogpu/framegraph/recording/backends/timeline"
	"github.com/gogpu/framegraph/recording/backends/trace"
)

func TestBackends(t *testing.T) {
	got := recording.Backends()

	names := make([]string, len(got))
	for i, info := range got {
		names[i] = info.Name
		if info.Summary == "" {
			t.Errorf("%s: empty Summary", info.Name)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Backends() names = %v, want sorted", names)
	}
	for _, want := range []string{"hal", "timeline", "trace"} {
		if !slices.Contains(names, want) {
			t.Errorf("Backends() names = %v, missing %q", names, want)
		}
	}

	wantOutput := map[string]recording.Output{
		"hal":      recording.OutputDevice,
		"timeline": recording.OutputImage,
		"trace":    recording.OutputText,
	}
	for _, info := range got {
		want, ok := wantOutput[info.Name]
		if !ok {
			continue
		}
		if info.Output != want {
			t.Errorf("%s: Output = %v, want %v", info.Name, info.Output, want)
		}
	}
}

func TestNewBackendOutputs(t *testing.T) {
	tests := []struct {
		name  string
		check func(recording.Backend) bool
	}{
		{"trace", func(b recording.Backend) bool {
			_, isTrace := b.(*trace.Backend)
			_, writes := b.(recording.WriterBackend)
			return isTrace && writes
		}},
		{"timeline", func(b recording.Backend) bool {
			_, isTimeline := b.(*timeline.Backend)
			_, draws := b.(recording.ImageBackend)
			return isTimeline && draws
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := recording.NewBackend(tt.name)
			if err != nil {
				t.Fatalf("NewBackend(%q) error = %v", tt.name, err)
			}
			if !tt.check(b) {
				t.Errorf("NewBackend(%q) = %T", tt.name, b)
			}
		})
	}
}

func TestNewBackendFreshInstances(t *testing.T) {
	a, err := recording.NewBackend("trace")
	if err != nil {
		t.Fatal(err)
	}
	b, err := recording.NewBackend("trace")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("NewBackend returned the same instance twice")
	}
}

func TestNewBackendUnknown(t *testing.T) {
	_, err := recording.NewBackend("vulkan")
	if !errors.Is(err, recording.ErrUnknownBackend) {
		t.Fatalf("NewBackend() error = %v, want ErrUnknownBackend", err)
	}
	if !strings.Contains(err.Error(), `"vulkan"`) || !strings.Contains(err.Error(), "forgotten import") {
		t.Errorf("error = %q, want the name and an import hint", err)
	}
	if _, ok := recording.Lookup("vulkan"); ok {
		t.Error(`Lookup("vulkan") = true`)
	}
}

func TestNewBackendFactoryError(t *testing.T) {
	_, err := recording.NewBackend("hal")
	if !errors.Is(err, hal.ErrNotConfigured) {
		t.Fatalf("NewBackend() error = %v, want hal.ErrNotConfigured", err)
	}
	if !strings.Contains(err.Error(), `backend "hal"`) {
		t.Errorf("error = %q, want the backend name", err)
	}
}

type captureKey struct{}

var captured any

func TestBackendConfigValue(t *testing.T) {
	if _, ok := recording.Lookup("capture-options"); !ok {
		recording.Register(recording.BackendInfo{
			Name:    "capture-options",
			Output:  recording.OutputText,
			Summary: "trace that exposes its configuration",
		}, func(cfg *recording.BackendConfig) (recording.Backend, error) {
			captured = cfg.Value(captureKey{})
			return trace.NewBackend(), nil
		})
	}

	if _, err := recording.NewBackend("capture-options", recording.WithValue(captureKey{}, 3)); err != nil {
		t.Fatal(err)
	}
	if captured != 3 {
		t.Errorf("Value() = %v, want 3", captured)
	}
	if _, err := recording.NewBackend("capture-options"); err != nil {
		t.Fatal(err)
	}
	if captured != nil {
		t.Errorf("Value() without option = %v, want nil", captured)
	}
}

func TestRegisterPanics(t *testing.T) {
	factory := func(*recording.BackendConfig) (recording.Backend, error) { return trace.NewBackend(), nil }
	tests := []struct {
		name    string
		info    recording.BackendInfo
		factory recording.BackendFactory
	}{
		{"duplicate", recording.BackendInfo{Name: "trace"}, factory},
		{"nil factory", recording.BackendInfo{Name: "nil-factory"}, nil},
		{"empty name", recording.BackendInfo{}, factory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register did not panic")
				}
			}()
			recording.Register(tt.info, tt.factory)
		})
	}
	if _, ok := recording.Lookup("nil-factory"); ok {
		t.Error("nil factory was registered")
	}
}

func TestRegistryConcurrentLookup(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if _, err := recording.NewBackend("trace"); err != nil {
					t.Error(err)
					return
				}
				_ = recording.Backends()
			}
		}()
	}
	wg.Wait()
}

func TestOutputString(t *testing.T) {
	tests := []struct {
		o    recording.Output
		want string
	}{
		{recording.OutputText, "text"},
		{recording.OutputImage, "image"},
		{recording.OutputDevice, "device"},
		{recording.Output(9), "Output(9)"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
