package backend

import (
	"context"
	"strings"
	"testing"

	"github.com/dotforge/dotforge/pkg/errors"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		format  string
		opts    []Option
		want    []string
		wantErr errors.Code
	}{
		{
			name:   "Basic",
			engine: "dot",
			format: "pdf",
			want:   []string{"dot", "-Kdot", "-Tpdf"},
		},
		{
			name:   "Engine",
			engine: "neato",
			format: "svg",
			want:   []string{"dot", "-Kneato", "-Tsvg"},
		},
		{
			name:   "Renderer",
			engine: "dot",
			format: "png",
			opts:   []Option{WithRenderer("cairo")},
			want:   []string{"dot", "-Kdot", "-Tpng:cairo"},
		},
		{
			name:   "RendererFormatter",
			engine: "dot",
			format: "png",
			opts:   []Option{WithRenderer("cairo"), WithFormatter("core")},
			want:   []string{"dot", "-Kdot", "-Tpng:cairo:core"},
		},
		{
			name:   "BinaryOverride",
			engine: "dot",
			format: "svg",
			opts:   []Option{WithBinary("/opt/graphviz/bin/dot")},
			want:   []string{"/opt/graphviz/bin/dot", "-Kdot", "-Tsvg"},
		},
		{
			name:    "UnknownEngine",
			engine:  "warp",
			format:  "pdf",
			wantErr: errors.ErrCodeInvalidEngine,
		},
		{
			name:    "UnknownFormat",
			engine:  "dot",
			format:  "doc",
			wantErr: errors.ErrCodeInvalidFormat,
		},
		{
			name:    "UnknownRenderer",
			engine:  "dot",
			format:  "png",
			opts:    []Option{WithRenderer("crayon")},
			wantErr: errors.ErrCodeInvalidRenderer,
		},
		{
			name:    "UnknownFormatter",
			engine:  "dot",
			format:  "png",
			opts:    []Option{WithRenderer("cairo"), WithFormatter("crayon")},
			wantErr: errors.ErrCodeInvalidFormatter,
		},
		{
			name:    "FormatterWithoutRenderer",
			engine:  "dot",
			format:  "png",
			opts:    []Option{WithFormatter("core")},
			wantErr: errors.ErrCodeMissingArgument,
		},
		{
			name:    "CaseSensitive",
			engine:  "DOT",
			format:  "pdf",
			wantErr: errors.ErrCodeInvalidEngine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Command(tt.engine, tt.format, tt.opts...)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Command error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Command: %v", err)
			}
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("Command = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutputSuffix(t *testing.T) {
	tests := []struct {
		name string
		opts options
		want string
	}{
		{"FormatOnly", options{}, "pdf"},
		{"Renderer", options{renderer: "cairo"}, "cairo.pdf"},
		{"RendererFormatter", options{renderer: "cairo", formatter: "core"}, "core.cairo.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.outputSuffix("pdf"); got != tt.want {
				t.Errorf("outputSuffix = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKnownEnginesSorted(t *testing.T) {
	engines := KnownEngines()
	if len(engines) != len(Engines) {
		t.Fatalf("KnownEngines returned %d entries, want %d", len(engines), len(Engines))
	}
	for i := 1; i < len(engines); i++ {
		if engines[i-1] >= engines[i] {
			t.Fatalf("KnownEngines not sorted: %q before %q", engines[i-1], engines[i])
		}
	}
}

func TestUnflattenFanoutRequiresStagger(t *testing.T) {
	_, err := Unflatten(context.Background(), "graph {}", UnflattenOptions{Fanout: true})
	if !errors.Is(err, errors.ErrCodeMissingArgument) {
		t.Fatalf("Unflatten error = %v, want code %s", err, errors.ErrCodeMissingArgument)
	}
}
