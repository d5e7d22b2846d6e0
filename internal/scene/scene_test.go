package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var fallback = Preset{
	Burst:    50,
	Speed:    Range{Min: 2, Max: 20},
	Lifetime: Range{Min: 1, Max: 3},
	Symbol:   "*",
}

const fountain = `
presets:
  - name: spark
    burst: 12
    speed: {min: 5, max: 10}
    lifetime: {min: 0.5, max: 1}
    symbol: "+"
  - name: smoke
    burst: 4
    speed: {min: 1, max: 2}
    lifetime: {min: 2, max: 4}
    symbol: "~"
emitters:
  - {x: 10, y: 5, preset: spark}
  - {x: 40, y: 12}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(fountain), fallback)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if s.Presets.Len() != 3 {
		t.Fatalf("registered %d presets, want 3", s.Presets.Len())
	}
	tests := []struct {
		name  string
		index uint32
		burst int
	}{
		{DefaultPreset, 0, 50},
		{"spark", 1, 12},
		{"smoke", 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := s.Index(tt.name)
			if !ok || index != tt.index {
				t.Fatalf("Index(%q) = %d, %v, want %d", tt.name, index, ok, tt.index)
			}
			if p := s.Presets.GetItem32(index); p.Burst != tt.burst || p.Name != tt.name {
				t.Errorf("preset = %+v, want %s with burst %d", p, tt.name, tt.burst)
			}
		})
	}

	if len(s.Emitters) != 2 {
		t.Fatalf("got %d emitters, want 2", len(s.Emitters))
	}
	if s.Emitters[1].Preset != DefaultPreset {
		t.Errorf("emitter without preset got %q, want %q", s.Emitters[1].Preset, DefaultPreset)
	}
}

func TestParseFileDefaultReplacesFallback(t *testing.T) {
	data := []byte(`
presets:
  - name: default
    burst: 3
    speed: {min: 1, max: 1}
    lifetime: {min: 1, max: 1}
    symbol: "."
`)
	s, err := Parse(data, fallback)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Presets.Len() != 1 {
		t.Errorf("registered %d presets, want only the file's default", s.Presets.Len())
	}
	index, _ := s.Index(DefaultPreset)
	if got := s.Presets.GetItem32(index).Burst; got != 3 {
		t.Errorf("default burst = %d, want 3", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"Malformed", "presets: [", "parse"},
		{"Unknown preset", "emitters:\n  - {x: 1, y: 1, preset: comet}", "unknown preset"},
		{"Duplicate", "presets:\n  - {name: a, symbol: x}\n  - {name: a, symbol: y}", "already registered"},
		{"Unnamed", "presets:\n  - {symbol: x}", "without a name"},
		{"Inverted speed", "presets:\n  - {name: a, symbol: x, speed: {min: 3, max: 1}}", "speed"},
		{"No symbol", "presets:\n  - {name: a}", "empty symbol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), fallback)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("Empty path", func(t *testing.T) {
		s, err := Load("", fallback)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if s.Presets.Len() != 1 || len(s.Emitters) != 0 {
			t.Errorf("Load(\"\") = %d presets, %d emitters", s.Presets.Len(), len(s.Emitters))
		}
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fountain.yaml")
		if err := os.WriteFile(path, []byte(fountain), 0o644); err != nil {
			t.Fatal(err)
		}
		s, err := Load(path, fallback)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if s.Presets.Len() != 3 {
			t.Errorf("registered %d presets, want 3", s.Presets.Len())
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), fallback); err == nil {
			t.Error("Load() of a missing scene succeeded")
		}
	})
}
