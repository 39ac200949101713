// Test Type: Unit Test
// Description: Tests for building processor configurations and generating project files

package config

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Defaults(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)

	configs, err := cfg.Build()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	md := configs[0]
	assert.Equal(t, "markdown", md.Name())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, md.Passes())

	var names []string
	for _, h := range md.Handlers() {
		names = append(names, h.Name())
	}
	assert.Equal(t, []string{"md-snippet-writer", "snippet-reader", "regex", "line-numberer", "line-skipper"}, names)

	assert.Equal(t, []int{1}, configs[1].Passes())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code errors.ErrorCode
	}{
		{
			name: "no configurations",
			cfg:  Config{},
			code: errors.ErrConfigValid,
		},
		{
			name: "unknown handler",
			cfg: Config{Configurations: []Configuration{{
				Name: "x", File: ".*", Handlers: []Handler{{Name: "nope"}},
			}}},
			code: errors.ErrHandlerNotFound,
		},
		{
			name: "bad handler option",
			cfg: Config{Configurations: []Configuration{{
				Name: "x", File: ".*", Handlers: []Handler{{Name: "trim", Options: map[string]interface{}{"bogus": 1}}},
			}}},
			code: errors.ErrHandlerOptions,
		},
		{
			name: "bad file pattern",
			cfg: Config{Configurations: []Configuration{{
				Name: "x", File: "(", Handlers: []Handler{{Name: "trim"}},
			}}},
			code: errors.ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Build()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestBuild_HandlerPasses(t *testing.T) {
	cfg := Config{Configurations: []Configuration{{
		Name: "docs",
		File: `\.md$`,
		Handlers: []Handler{
			{Name: "trim", Passes: []int{7, 2}},
		},
	}}}

	configs, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 7}, configs[0].Passes())
}

func TestProcessorOptions(t *testing.T) {
	cfg := &Config{Root: "docs", IgnoreDirs: []string{"target"}, Concurrency: 4}
	assert.Len(t, cfg.ProcessorOptions(), 3)

	cfg = &Config{Root: "."}
	assert.Len(t, cfg.ProcessorOptions(), 1)
}

func TestGenerateTOML(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)
	cfg.Root = "/somewhere"

	out, err := GenerateTOML(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "# snipper configuration")
	assert.NotContains(t, string(out), "/somewhere")

	var back Config
	require.NoError(t, toml.Unmarshal(out, &back))
	assert.Equal(t, cfg.Glob, back.Glob)
	require.Len(t, back.Configurations, 2)
	assert.Equal(t, cfg.Configurations[0].Handlers[2].Passes, back.Configurations[0].Handlers[2].Passes)
}

func TestStylesPath(t *testing.T) {
	tests := []struct {
		root, styles, want string
	}{
		{"site", "", ""},
		{"site", "theme.yaml", filepath.Join("site", "theme.yaml")},
		{"site", "/etc/snipper/theme.yaml", "/etc/snipper/theme.yaml"},
	}
	for _, tt := range tests {
		cfg := &Config{Root: tt.root, Styles: tt.styles}
		assert.Equal(t, tt.want, cfg.StylesPath())
	}
}
