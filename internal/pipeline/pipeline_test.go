package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/gen"
	"wrapper-generator/internal/match"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, header string) (*decl.Set, error) {
	args := m.Called(ctx, header)

	set, _ := args.Get(0).(*decl.Set)

	return set, args.Error(1)
}

const project = `
-- package_info.yaml --
name: pyshapes
template_substitutions:
  - signature: <unsigned DIM>
    replacement: [[2], [3]]
modules:
  - name: shapes
    classes:
      - name: Point
      - name: Missing
    free_functions:
      - name: area
-- src/Point.hpp --
#ifndef POINT_HPP_
#define POINT_HPP_

template <unsigned DIM>
class Point
{
public:
    Point();
};

#endif
-- src/util.hpp --
double area(double r);
`

func materialize(t *testing.T, archive string) string {
	t.Helper()

	dir := t.TempDir()

	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}

	return dir
}

func point(root string, dim string) *decl.Class {
	c := &decl.Class{
		Name:     "Point<" + dim + ">",
		Access:   decl.AccessPublic,
		Location: decl.Location{File: filepath.Join(root, "Point.hpp"), Line: 5},
	}
	c.Constructors = []*decl.Function{{Name: c.Name, Owner: c, Access: decl.AccessPublic}}

	return c
}

func declarations(root string) *decl.Set {
	return &decl.Set{
		Classes: []*decl.Class{
			point(root, "2"),
			point(root, "3"),
			{Name: "Missing", Location: decl.Location{File: "/usr/include/missing.hpp"}},
		},
		Functions: []*decl.Function{{
			Name:      "area",
			Returns:   decl.Type{Decl: "double"},
			Arguments: []decl.Argument{{Name: "r", Type: decl.Type{Decl: "double"}}},
			Location:  decl.Location{File: filepath.Join(root, "util.hpp"), Line: 1},
		}},
	}
}

func setup(t *testing.T) (Options, *mockExtractor) {
	t.Helper()

	dir := materialize(t, project)
	opts := Options{
		SourceRoot:  filepath.Join(dir, "src"),
		WrapperRoot: filepath.Join(dir, "wrapper"),
		PackageInfo: filepath.Join(dir, "package_info.yaml"),
	}

	ex := &mockExtractor{}
	ex.On("Extract", mock.Anything, filepath.Join(opts.WrapperRoot, gen.HeaderCollectionFile)).
		Return(declarations(opts.SourceRoot), nil).Once()

	return opts, ex
}

func TestRunner_Run(t *testing.T) {
	opts, ex := setup(t)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := NewRunner(ex, logger).Run(context.Background(), opts)
	require.NoError(t, err)
	ex.AssertExpectations(t)

	assert.Equal(t, match.Summary{Resolved: 3, Unresolved: 1}, res.Summary)
	assert.Len(t, res.Headers, 2)

	unresolved := res.Diagnostics.WithCode(diagnostic.CodeUnresolved)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "shapes/Missing", unresolved[0].Feature)
	assert.Equal(t, diagnostic.DiagnosticWarning, unresolved[0].Severity)

	for _, name := range []string{
		gen.HeaderCollectionFile,
		"shapes/Point2.cppwg.hpp",
		"shapes/Point2.cppwg.cpp",
		"shapes/Point3.cppwg.hpp",
		"shapes/Point3.cppwg.cpp",
		"shapes/shapes.main.cpp",
	} {
		assert.FileExists(t, filepath.Join(opts.WrapperRoot, filepath.FromSlash(name)))
	}

	collection, err := os.ReadFile(filepath.Join(opts.WrapperRoot, gen.HeaderCollectionFile))
	require.NoError(t, err)
	assert.Contains(t, string(collection), "#include \"Point.hpp\"\n")
	assert.Contains(t, string(collection), "template class Point<2>;\ntemplate class Point<3>;\n")

	moduleSrc, err := os.ReadFile(filepath.Join(opts.WrapperRoot, "shapes", "shapes.main.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(moduleSrc), "PYBIND11_MODULE(_pyshapes_shapes, m)")
	assert.Contains(t, string(moduleSrc), `m.def("area", &::area, " " , py::arg("r"));`)
	assert.Contains(t, string(moduleSrc), "    register_Point2_class(m);\n    register_Point3_class(m);\n")

	assert.Contains(t, logs.String(), "collected headers")
	assert.Contains(t, logs.String(), "wrote wrappers")
	assert.NotContains(t, logs.String(), "binding plan")
}

func TestRunner_DumpPlan(t *testing.T) {
	opts, ex := setup(t)
	opts.DumpPlan = true

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewRunner(ex, logger).Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "binding plan")
	assert.Contains(t, logs.String(), "Point2")
}

func TestRunner_Strict(t *testing.T) {
	opts, ex := setup(t)
	opts.Strict = true

	res, err := NewRunner(ex, nil).Run(context.Background(), opts)
	require.ErrorIs(t, err, ErrStrict)
	assert.Nil(t, res.Plan)
	assert.True(t, res.Diagnostics.HasErrors())
	assert.NoFileExists(t, filepath.Join(opts.WrapperRoot, "shapes", "shapes.main.cpp"))
}

func TestRunner_ExtractorFailure(t *testing.T) {
	dir := materialize(t, project)
	opts := Options{
		SourceRoot:  filepath.Join(dir, "src"),
		WrapperRoot: filepath.Join(dir, "wrapper"),
		PackageInfo: filepath.Join(dir, "package_info.yaml"),
	}

	boom := errors.New("castxml exited with status 1")
	ex := &mockExtractor{}
	ex.On("Extract", mock.Anything, mock.Anything).Return(nil, boom).Once()

	_, err := NewRunner(ex, nil).Run(context.Background(), opts)
	require.ErrorIs(t, err, boom)
	ex.AssertExpectations(t)

	assert.FileExists(t, filepath.Join(opts.WrapperRoot, gen.HeaderCollectionFile), "the collection is written before extraction")
}

func TestRunner_FatalInputs(t *testing.T) {
	tests := []struct {
		name    string
		archive string
		mutate  func(dir string, o *Options)
		wantErr error
	}{
		{
			name:    "missing source root",
			archive: project,
			mutate:  func(dir string, o *Options) { o.SourceRoot = filepath.Join(dir, "nope") },
			wantErr: ErrSourceRoot,
		},
		{
			name:    "source root is a file",
			archive: project,
			mutate:  func(dir string, o *Options) { o.SourceRoot = filepath.Join(dir, "package_info.yaml") },
			wantErr: ErrSourceRoot,
		},
		{
			name:    "missing package info",
			archive: project,
			mutate:  func(dir string, o *Options) { o.PackageInfo = filepath.Join(dir, "missing.yaml") },
			wantErr: os.ErrNotExist,
		},
		{
			name: "module without name",
			archive: `
-- package_info.yaml --
modules:
  - classes: [Point]
-- src/Point.hpp --
class Point {};
`,
			wantErr: ErrInvalidRuleset,
		},
		{
			name: "unknown custom generator",
			archive: `
-- package_info.yaml --
custom_generator: not_registered
modules:
  - name: shapes
-- src/Point.hpp --
class Point {};
`,
			wantErr: gen.ErrUnknownCustomGenerator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := materialize(t, tt.archive)
			opts := Options{
				SourceRoot:  filepath.Join(dir, "src"),
				WrapperRoot: filepath.Join(dir, "wrapper"),
				PackageInfo: filepath.Join(dir, "package_info.yaml"),
			}

			if tt.mutate != nil {
				tt.mutate(dir, &opts)
			}

			ex := &mockExtractor{}

			_, err := NewRunner(ex, nil).Run(context.Background(), opts)
			require.ErrorIs(t, err, tt.wantErr)
			ex.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
		})
	}
}

func TestRunner_DefaultRuleset(t *testing.T) {
	dir := materialize(t, project)
	root := filepath.Join(dir, "src")
	wrapper := filepath.Join(root, "wrapper")

	ex := &mockExtractor{}
	ex.On("Extract", mock.Anything, filepath.Join(wrapper, gen.HeaderCollectionFile)).
		Return(declarations(root), nil).Once()

	res, err := NewRunner(ex, nil).Run(context.Background(), Options{SourceRoot: root, WrapperRoot: wrapper})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Summary.Synthesized, "the out-of-tree declaration is filtered")
	assert.FileExists(t, filepath.Join(wrapper, "cppwg_package", "cppwg_package.main.cpp"))
}

func TestKeepLocation(t *testing.T) {
	keep := keepLocation("/work/src")

	assert.True(t, keep(decl.Location{File: "/work/src/geo/Point.hpp"}))
	assert.True(t, keep(decl.Location{File: "/tmp/out/" + gen.HeaderCollectionFile}))
	assert.False(t, keep(decl.Location{File: "/usr/include/c++/vector"}))
}
