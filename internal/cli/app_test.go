package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"wrapper-generator/internal/decl"
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
modules:
  - name: shapes
    classes:
      - name: Shape
      - name: Circle
-- src/Shape.hpp --
class Shape
{
public:
    Shape();
};
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

func shapes(root string) *decl.Set {
	c := &decl.Class{Name: "Shape", Location: decl.Location{File: filepath.Join(root, "Shape.hpp"), Line: 1}}
	c.Constructors = []*decl.Function{{Name: "Shape", Owner: c, Access: decl.AccessPublic}}

	return &decl.Set{Classes: []*decl.Class{c}}
}

type harness struct {
	app    *App
	stdout bytes.Buffer
	stderr bytes.Buffer
	ex     *mockExtractor
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{ex: &mockExtractor{}, dir: materialize(t, project)}
	h.app = &App{
		Version: "1.2.3",
		Stdout:  &h.stdout,
		Stderr:  &h.stderr,
		WorkDir: h.dir,
		NewExtractor: func(_ context.Context, _ *Config, includes []string) (decl.Extractor, error) {
			assert.Equal(t, []string{filepath.Join(h.dir, "src")}, includes)
			return h.ex, nil
		},
	}

	return h
}

func TestApp_Run(t *testing.T) {
	h := newHarness(t)
	wrapper := filepath.Join(h.dir, "out")
	h.ex.On("Extract", mock.Anything, mock.Anything).Return(shapes(filepath.Join(h.dir, "src")), nil).Once()

	code := h.app.Run(context.Background(), []string{"-w", wrapper, filepath.Join(h.dir, "src")})
	require.Equal(t, ExitOK, code, h.stderr.String())
	h.ex.AssertExpectations(t)

	assert.FileExists(t, filepath.Join(wrapper, "shapes", "Shape.cppwg.cpp"))
	assert.Contains(t, h.stderr.String(), "[unresolved_feature]")
	assert.Contains(t, h.stderr.String(), "0 error(s), 1 warning(s)")
	assert.NotContains(t, h.stderr.String(), "\x1b[", "no colour outside a terminal")
}

func TestApp_RunDefaultWrapperRoot(t *testing.T) {
	h := newHarness(t)
	h.ex.On("Extract", mock.Anything, mock.Anything).Return(shapes(filepath.Join(h.dir, "src")), nil).Once()

	code := h.app.Run(context.Background(), []string{"-q", filepath.Join(h.dir, "src")})
	require.Equal(t, ExitOK, code, h.stderr.String())

	matches, err := filepath.Glob(filepath.Join(h.dir, "src", "cppwg_wrapper_*", "shapes", "shapes.main.cpp"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestApp_RunStrict(t *testing.T) {
	h := newHarness(t)
	h.ex.On("Extract", mock.Anything, mock.Anything).Return(shapes(filepath.Join(h.dir, "src")), nil).Once()

	code := h.app.Run(context.Background(), []string{"--strict", "-w", filepath.Join(h.dir, "out"), filepath.Join(h.dir, "src")})
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, h.stderr.String(), "1 error(s)")
	assert.Contains(t, h.stderr.String(), "generation failed")
}

func TestApp_RunExtractorFactoryFailure(t *testing.T) {
	h := newHarness(t)
	h.app.NewExtractor = func(context.Context, *Config, []string) (decl.Extractor, error) {
		return nil, decl.ErrCastXMLNotFound
	}

	code := h.app.Run(context.Background(), []string{"-w", filepath.Join(h.dir, "out"), filepath.Join(h.dir, "src")})
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, h.stderr.String(), decl.ErrCastXMLNotFound.Error())
}

func TestApp_RunBadTemplates(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.dir, "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown_key: x\n"), 0o644))

	code := h.app.Run(context.Background(), []string{"--templates", path, filepath.Join(h.dir, "src")})
	assert.Equal(t, ExitFailure, code)
	h.ex.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestApp_RunExtractError(t *testing.T) {
	h := newHarness(t)
	h.ex.On("Extract", mock.Anything, mock.Anything).Return(nil, errors.New("castxml: fatal error")).Once()

	code := h.app.Run(context.Background(), []string{"-w", filepath.Join(h.dir, "out"), filepath.Join(h.dir, "src")})
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, h.stderr.String(), "castxml: fatal error")
}

func TestApp_Usage(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, ExitUsage, h.app.Run(context.Background(), nil))
	assert.Contains(t, h.stderr.String(), "SOURCE_ROOT")

	h.stderr.Reset()
	assert.Equal(t, ExitOK, h.app.Run(context.Background(), []string{"--help"}))
	assert.Contains(t, h.stderr.String(), "--wrapper-root")
}

func TestApp_Version(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, ExitOK, h.app.Run(context.Background(), []string{"--version"}))
	assert.Equal(t, "1.2.3\n", h.stdout.String())
}
