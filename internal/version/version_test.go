package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	require.NotEmpty(t, info.CUESDKVersion, "CUESDKVersion should be populated")
	assert.Equal(t, Version, info.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:       "v1.0.0",
		GitCommit:     "abc123",
		BuildDate:     "2026-01-29",
		GoVersion:     "go1.25",
		CUESDKVersion: "v0.15.4",
	}

	str := info.String()

	assert.Contains(t, str, "compforge version v1.0.0")
	assert.Contains(t, str, "abc123")
	assert.Contains(t, str, "2026-01-29")
	assert.Contains(t, str, "go1.25")
	assert.Contains(t, str, "v0.15.4")
}

func TestCUESDKVersion(t *testing.T) {
	tests := []struct {
		name string
		info *debug.BuildInfo
		ok   bool
		want string
	}{
		{
			name: "no build info",
			ok:   false,
			want: "unknown",
		},
		{
			name: "dependency present",
			info: &debug.BuildInfo{Deps: []*debug.Module{
				{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
				{Path: "cuelang.org/go", Version: "v0.15.4"},
			}},
			ok:   true,
			want: "v0.15.4",
		},
		{
			name: "replaced dependency",
			info: &debug.BuildInfo{Deps: []*debug.Module{
				{Path: "cuelang.org/go", Version: "v0.15.4", Replace: &debug.Module{Path: "cuelang.org/go", Version: "v0.16.0"}},
			}},
			ok:   true,
			want: "v0.16.0",
		},
		{
			name: "dependency missing",
			info: &debug.BuildInfo{},
			ok:   true,
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cueSDKVersion(func() (*debug.BuildInfo, bool) { return tt.info, tt.ok })
			assert.Equal(t, tt.want, got)
		})
	}
}
