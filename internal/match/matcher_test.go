package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/feature"
)

type fixture struct {
	set     *decl.Set
	point2  *decl.Class
	point3  *decl.Class
	square  *decl.Class
	shape   *decl.Class
	sub     *decl.Function
	pi      *decl.Variable
	addInt  *decl.Function
	addReal *decl.Function
}

func newFixture() *fixture {
	at := func(file string) decl.Location { return decl.Location{File: file, Line: 1} }

	f := &fixture{
		point2: &decl.Class{Name: "Point<2>", Context: "::geo", Location: at("/src/geometry/Point.hpp")},
		point3: &decl.Class{Name: "Point<3>", Context: "::geo", Location: at("/src/geometry/Point.hpp")},
		square: &decl.Class{Name: "Square", Location: at("/src/primitives/Square.hpp")},
		shape:  &decl.Class{Name: "Shape", Abstract: true, Location: at("/src/primitives/Shape.hpp")},
		sub:    &decl.Function{Name: "sub", Location: at("/src/other/Sub.hpp")},
		pi:     &decl.Variable{Name: "PI", Context: "::geo", Location: at("/src/geometry/Point.hpp")},
		addInt: &decl.Function{Name: "add", Location: at("/src/math_funcs/Add.hpp"),
			Arguments: []decl.Argument{{Name: "a", Type: decl.Type{Decl: "int"}}}},
		addReal: &decl.Function{Name: "add", Location: at("/src/math_funcs/Add.hpp"),
			Arguments: []decl.Argument{{Name: "a", Type: decl.Type{Decl: "double"}}}},
	}

	iterator := &decl.Class{Name: "iterator", Context: "::Square", Owner: f.square, Location: at("/src/primitives/Square.hpp")}
	f.square.Nested = []*decl.Class{iterator}

	f.set = &decl.Set{
		Classes: []*decl.Class{
			f.point2, f.point3, f.square, iterator, f.shape,
			{Name: "Thing", Context: "::a", Location: at("/src/geometry/Thing.hpp")},
			{Name: "Thing", Context: "::b", Location: at("/src/geometry/Thing.hpp")},
			{Name: "Fwd", Incomplete: true, Location: at("/src/primitives/Fwd.hpp")},
		},
		Functions: []*decl.Function{f.addInt, f.addReal, f.sub},
		Variables: []*decl.Variable{f.pi},
	}

	return f
}

type treeNodes struct {
	tree   *feature.Tree
	point  *feature.Node
	thing  *feature.Node
	sqare  *feature.Node
	add    *feature.Node
	sub    *feature.Node
	pi     *feature.Node
	prim   *feature.Node
	maths  *feature.Node
	geoAll *feature.Node
}

func newTree() treeNodes {
	tree := feature.NewTree("pyshapes")
	tree.Root().Package.SourceRoot = "/src"

	var tn treeNodes

	tn.tree = tree

	geo := tree.Add(0, feature.KindModule, "geometry")
	tn.point = tree.Add(geo.ID, feature.KindClass, "Point")
	tn.point.TemplateArgLists = [][]string{{"2"}, {"3"}, {"4"}}
	tn.thing = tree.Add(geo.ID, feature.KindClass, "Thing")
	tn.sqare = tree.Add(geo.ID, feature.KindClass, "Sqare")
	tn.pi = tree.Add(geo.ID, feature.KindVariable, "PI")

	funcs := tree.Add(0, feature.KindModule, "funcs")
	tn.add = tree.Add(funcs.ID, feature.KindFreeFunction, "add")
	tn.sub = tree.Add(funcs.ID, feature.KindFreeFunction, "sub")

	tn.prim = tree.Add(0, feature.KindModule, "primitives")
	tn.prim.Module.UseAllClasses = true
	tn.prim.Module.SourceLocations = []string{"primitives"}

	tn.maths = tree.Add(0, feature.KindModule, "math_funcs")
	tn.maths.Module.UseAllFreeFunctions = true
	tn.maths.Module.SourceLocations = []string{"math_funcs/"}

	tn.geoAll = tree.Add(0, feature.KindModule, "geo_all")
	tn.geoAll.Module.UseAllClasses = true
	tn.geoAll.Module.UseAllVariables = true
	tn.geoAll.Module.SourceLocations = []string{"geometry"}

	return tn
}

func TestClassify(t *testing.T) {
	f := newFixture()

	none := Classify([]*decl.Class{})
	assert.Equal(t, Unresolved, none.Kind)
	assert.Nil(t, none.Decl())

	one := Classify([]*decl.Class{f.square})
	assert.Equal(t, Resolved, one.Kind)
	assert.Same(t, f.square, one.Decl())

	two := Classify([]*decl.Function{f.addInt, f.addReal})
	assert.Equal(t, Ambiguous, two.Kind)
	assert.Len(t, two.Candidates, 2)
	assert.Nil(t, two.Decl())

	assert.Equal(t, "Ambiguous", Ambiguous.String())
	assert.Equal(t, "ResultKind(7)", ResultKind(7).String())
}

func TestMatcher_Lookup(t *testing.T) {
	f := newFixture()
	m := New(f.set, Options{})

	assert.Same(t, f.point2, m.Lookup(feature.KindClass, "Point<2 >").Decl())
	assert.Same(t, f.point2, m.Lookup(feature.KindClass, "geo::Point<2>").Decl())
	assert.Same(t, f.pi, m.Lookup(feature.KindVariable, "::geo::PI").Decl())
	assert.Equal(t, Ambiguous, m.Lookup(feature.KindFreeFunction, "add").Kind)
	assert.Equal(t, Unresolved, m.Lookup(feature.KindMethod, "add").Kind)
}

func TestMatcher_Resolve(t *testing.T) {
	f := newFixture()
	tn := newTree()
	diags := &diagnostic.Diagnostics{}

	sum := New(f.set, Options{}).Resolve(tn.tree, diags)

	t.Run("partial instantiations", func(t *testing.T) {
		require.Len(t, tn.point.Decls, 3)
		assert.Same(t, f.point2, tn.point.Decls[0])
		assert.Same(t, f.point3, tn.point.Decls[1])
		assert.Nil(t, tn.point.Decls[2])
	})

	t.Run("unresolved with suggestions", func(t *testing.T) {
		unresolved := diags.WithCode(diagnostic.CodeUnresolved)
		require.Len(t, unresolved, 2)

		assert.Equal(t, diagnostic.DiagnosticWarning, unresolved[0].Severity)
		assert.Equal(t, "geometry/Point", unresolved[0].Feature)
		assert.Equal(t, "Point<4 >", unresolved[0].Location)
		assert.Equal(t, []string{"Point<2>", "Point<3>"}, unresolved[0].Suggestions)

		assert.Equal(t, "geometry/Sqare", unresolved[1].Feature)
		assert.Equal(t, []string{"Square", "Shape"}, unresolved[1].Suggestions)
		assert.Equal(t, []decl.Decl{nil}, tn.sqare.Decls)
	})

	t.Run("ambiguous binds nothing", func(t *testing.T) {
		ambiguous := diags.WithCode(diagnostic.CodeAmbiguous)
		require.Len(t, ambiguous, 2)
		assert.Equal(t, "geometry/Thing", ambiguous[0].Feature)
		assert.Contains(t, ambiguous[0].Message, "::a::Thing, ::b::Thing")
		assert.Equal(t, "funcs/add", ambiguous[1].Feature)

		assert.Equal(t, []decl.Decl{nil}, tn.thing.Decls)
		assert.Equal(t, []decl.Decl{nil}, tn.add.Decls)
	})

	t.Run("resolved", func(t *testing.T) {
		assert.Equal(t, []decl.Decl{f.sub}, tn.sub.Decls)
		assert.Equal(t, []decl.Decl{f.pi}, tn.pi.Decls)
	})

	t.Run("expose all classes", func(t *testing.T) {
		classes := tn.tree.Children(tn.prim.ID, feature.KindClass)
		require.Len(t, classes, 2, "nested and incomplete classes are not synthesized")

		assert.Equal(t, "Square", classes[0].Name)
		assert.True(t, classes[0].Synthesized)
		assert.Equal(t, []decl.Decl{f.square}, classes[0].Decls)
		assert.Equal(t, "/src/primitives/Square.hpp", classes[0].SourceFileFullPath)
		assert.Equal(t, "Square.hpp", classes[0].SourceFile)
		assert.Nil(t, classes[0].TemplateArgLists)
		assert.Equal(t, "Shape", classes[1].Name)
	})

	t.Run("expose all templated classes", func(t *testing.T) {
		classes := tn.tree.Children(tn.geoAll.ID, feature.KindClass)
		require.Len(t, classes, 4)

		assert.Equal(t, "Point", classes[0].Name)
		assert.Equal(t, [][]string{{"2"}}, classes[0].TemplateArgLists)
		assert.Equal(t, []string{"Point2"}, tn.tree.ShortNames(classes[0].ID))
		assert.Equal(t, []string{"Point<2 >"}, tn.tree.FullNames(classes[0].ID))
		assert.Equal(t, [][]string{{"3"}}, classes[1].TemplateArgLists)
		assert.Equal(t, "Thing", classes[2].Name)

		vars := tn.tree.Children(tn.geoAll.ID, feature.KindVariable)
		require.Len(t, vars, 1)
		assert.Equal(t, []decl.Decl{f.pi}, vars[0].Decls)
	})

	t.Run("expose all functions", func(t *testing.T) {
		funcs := tn.tree.Children(tn.maths.ID, feature.KindFreeFunction)
		require.Len(t, funcs, 2, "overloads each get a feature; sub lies outside the locations")
		assert.Equal(t, []decl.Decl{f.addInt}, funcs[0].Decls)
		assert.Equal(t, []decl.Decl{f.addReal}, funcs[1].Decls)
	})

	assert.Equal(t, Summary{Synthesized: 9, Resolved: 4, Unresolved: 2, Ambiguous: 2}, sum)
	assert.False(t, diags.HasErrors())
}

func TestMatcher_Strict(t *testing.T) {
	f := newFixture()
	tn := newTree()
	diags := &diagnostic.Diagnostics{}

	New(f.set, Options{Strict: true, Suggestions: 1}).Resolve(tn.tree, diags)

	require.Len(t, diags.Errors, 4)
	assert.Empty(t, diags.Warnings)

	unresolved := diags.WithCode(diagnostic.CodeUnresolved)
	require.Len(t, unresolved, 2)
	assert.Equal(t, []string{"Point<2>"}, unresolved[0].Suggestions)
}

func TestModuleLocations(t *testing.T) {
	assert.Equal(t, []string{"/src/a/", "/src/b/c/"}, moduleLocations("/src/", []string{"a", "/b/c/"}))
	assert.Empty(t, moduleLocations("/src", nil))
}
