package cli

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *Config
		wantErr error
	}{
		{
			name: "positional only",
			args: []string{"src"},
			want: &Config{SourceRoot: "src"},
		},
		{
			name: "short flags",
			args: []string{"-w", "out", "-p", "pkg.yaml", "-c", "/opt/castxml", "-f", "-std=c++17", "-i", "a,b", "-i", "c", "-q", "src"},
			want: &Config{
				SourceRoot:    "src",
				WrapperRoot:   "out",
				PackageInfo:   "pkg.yaml",
				CastXMLBinary: "/opt/castxml",
				CastXMLCFlags: "-std=c++17",
				Includes:      []string{"a", "b", "c"},
				Quiet:         true,
			},
		},
		{
			name: "long flags",
			args: []string{"--wrapper-root=out", "--verbose", "--strict", "--templates", "t.yaml", "--dump-plan", "src"},
			want: &Config{
				SourceRoot:  "src",
				WrapperRoot: "out",
				Verbose:     true,
				Strict:      true,
				Templates:   "t.yaml",
				DumpPlan:    true,
			},
		},
		{
			name: "version needs no source root",
			args: []string{"--version"},
			want: &Config{ShowVersion: true},
		},
		{name: "missing source root", args: []string{"-q"}, wantErr: ErrUsage},
		{name: "two source roots", args: []string{"a", "b"}, wantErr: ErrUsage},
		{name: "quiet and verbose", args: []string{"-q", "-v", "src"}, wantErr: ErrUsage},
		{name: "unknown flag", args: []string{"--nope", "src"}, wantErr: ErrUsage},
		{name: "help", args: []string{"--help"}, wantErr: pflag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args, io.Discard)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultWrapperRoot(t *testing.T) {
	a := DefaultWrapperRoot("/work/src")
	b := DefaultWrapperRoot("/work/src")

	assert.Equal(t, "/work/src", filepath.Dir(a))
	assert.Regexp(t, regexp.MustCompile(`^cppwg_wrapper_[0-9a-f]{8}$`), filepath.Base(a))
	assert.NotEqual(t, a, b)
}

func TestPackageInfoOrDefault(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "given.yaml", packageInfoOrDefault("given.yaml", dir))
	assert.Empty(t, packageInfoOrDefault("", dir))

	path := filepath.Join(dir, DefaultPackageInfo)
	require.NoError(t, os.WriteFile(path, []byte("name: pkg\n"), 0o644))
	assert.Equal(t, path, packageInfoOrDefault("", dir))
}

func TestIncludeDirs(t *testing.T) {
	root := t.TempDir()

	got, err := includeDirs(nil, root)
	require.NoError(t, err)
	assert.Equal(t, []string{root}, got)

	got, err = includeDirs([]string{root}, "/elsewhere")
	require.NoError(t, err)
	assert.Equal(t, []string{root}, got)

	_, err = includeDirs([]string{filepath.Join(root, "missing")}, root)
	assert.ErrorIs(t, err, ErrIncludeDir)
}
