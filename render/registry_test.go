package render

import (
	"errors"
	"image"
	"testing"
)

// fakeRenderer is a minimal Renderer for registry tests.
type fakeRenderer struct {
	name string
}

func (f *fakeRenderer) Name() string               { return f.name }
func (f *fakeRenderer) Resize(width, height int)   {}
func (f *fakeRenderer) Close() error               { return nil }
func (f *fakeRenderer) Render(Frame) (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func fakeFactory(name string) Factory {
	return func(opts Options) (Renderer, error) {
		return &fakeRenderer{name: name}, nil
	}
}

func TestRegistryPriorityOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(RegistryEntry{Name: "soft", Priority: 10, Factory: fakeFactory("soft")})
	r.Register(RegistryEntry{Name: "gpu", Priority: 100, Factory: fakeFactory("gpu")})

	got := r.List()
	want := []string{"gpu", "soft"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryBestSkipsUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register(RegistryEntry{
		Name:      "gpu",
		Priority:  100,
		Factory:   fakeFactory("gpu"),
		Available: func() bool { return false },
	})
	r.Register(RegistryEntry{Name: "soft", Priority: 10, Factory: fakeFactory("soft")})

	renderer, err := r.Best(Options{Width: 64, Height: 64})
	if err != nil {
		t.Fatalf("Best() error: %v", err)
	}
	if renderer.Name() != "soft" {
		t.Errorf("Best() = %q, want fallback to soft", renderer.Name())
	}
}

func TestRegistryBestFallsThroughFactoryFailure(t *testing.T) {
	r := NewRegistry()
	r.Register(RegistryEntry{
		Name:     "gpu",
		Priority: 100,
		Factory: func(Options) (Renderer, error) {
			return nil, errors.New("no adapter")
		},
	})
	r.Register(RegistryEntry{Name: "soft", Priority: 10, Factory: fakeFactory("soft")})

	renderer, err := r.Best(Options{})
	if err != nil {
		t.Fatalf("Best() error: %v", err)
	}
	if renderer.Name() != "soft" {
		t.Errorf("Best() = %q, want soft after gpu factory failure", renderer.Name())
	}
}

func TestRegistryBestEmpty(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Best(Options{}); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Best() on empty registry = %v, want ErrNoBackend", err)
	}
}

func TestRegistryNewUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.New("metal", Options{}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(unknown) = %v, want ErrUnknownBackend", err)
	}
}

func TestRegistryNewUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register(RegistryEntry{
		Name:      "gpu",
		Priority:  100,
		Factory:   fakeFactory("gpu"),
		Available: func() bool { return false },
	})
	if _, err := r.New("gpu", Options{}); err == nil {
		t.Error("New() on unavailable backend succeeded")
	}
}
