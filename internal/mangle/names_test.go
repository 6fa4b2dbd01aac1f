package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestShortAndFullNames(t *testing.T) {
	tests := []struct {
		name      string
		id        Identifier
		wantShort []string
		wantFull  []string
	}{
		{
			name:      "untemplated",
			id:        Identifier{Name: "Point"},
			wantShort: []string{"Point"},
			wantFull:  []string{"Point"},
		},
		{
			name:      "untemplated override kept verbatim",
			id:        Identifier{Name: "Point", NameOverride: "point_t"},
			wantShort: []string{"point_t"},
			wantFull:  []string{"Point"},
		},
		{
			name:      "two instantiations",
			id:        Identifier{Name: "Foo", TemplateArgLists: [][]string{{"2", "2"}, {"3", "3"}}},
			wantShort: []string{"Foo2_2", "Foo3_3"},
			wantFull:  []string{"Foo<2,2 >", "Foo<3,3 >"},
		},
		{
			name:      "type arguments",
			id:        Identifier{Name: "Wrapper", TemplateArgLists: [][]string{{"unsigned int", "double"}}},
			wantShort: []string{"WrapperUnsigned_Double"},
			wantFull:  []string{"Wrapper<unsigned int,double >"},
		},
		{
			name:      "pointer and vector arguments",
			id:        Identifier{Name: "Holder", TemplateArgLists: [][]string{{"std::vector<double>", "Node*"}}},
			wantShort: []string{"HolderVectorDouble_NodePtr"},
			wantFull:  []string{"Holder<std::vector<double>,Node* >"},
		},
		{
			name:      "override used for short name only",
			id:        Identifier{Name: "Foo", NameOverride: "bar", TemplateArgLists: [][]string{{"2"}}},
			wantShort: []string{"Bar2"},
			wantFull:  []string{"Foo<2 >"},
		},
		{
			name:      "single character name is not capitalized",
			id:        Identifier{Name: "v", TemplateArgLists: [][]string{{"x"}}},
			wantShort: []string{"vx"},
			wantFull:  []string{"v<x >"},
		},
		{
			name:      "empty instantiation list",
			id:        Identifier{Name: "Foo", TemplateArgLists: [][]string{}},
			wantShort: []string{},
			wantFull:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			short := ShortNames(tt.id, DefaultTable())
			full := FullNames(tt.id)

			assert.Equal(t, tt.wantShort, short)
			assert.Equal(t, tt.wantFull, full)
			assert.Len(t, short, len(full))

			if tt.id.Templated() {
				assert.Len(t, short, len(tt.id.TemplateArgLists))
			} else {
				assert.Len(t, short, 1)
			}
		})
	}
}

func TestFragment_KeepsInteriorCase(t *testing.T) {
	assert.Equal(t, "MyVTKGrid", Fragment("myVTKGrid", nil))
	assert.Equal(t, "Ns_inner", Fragment("ns::_inner", nil))
}

func TestShortNames_Idempotent(t *testing.T) {
	table := DefaultTable()
	require.NoError(t, table.Validate())

	id := Identifier{Name: "Foo", TemplateArgLists: [][]string{{"unsigned int", "std::vector<double>*"}}}
	for _, short := range ShortNames(id, table) {
		assert.Equal(t, short, Fragment(short, table))
	}
}

func TestShortNames_TableOrderMatters(t *testing.T) {
	id := Identifier{Name: "Foo", TemplateArgLists: [][]string{{"unsigned int"}}}

	ordered := Table{{Pattern: "unsigned int", Replacement: "Unsigned"}, {Pattern: "unsigned", Replacement: "Uns"}}
	reversed := Table{{Pattern: "unsigned", Replacement: "Uns"}, {Pattern: "unsigned int", Replacement: "Unsigned"}}

	assert.Equal(t, []string{"FooUnsigned"}, ShortNames(id, ordered))
	assert.Equal(t, []string{"FooUnsigned"}, ShortNames(id, ordered), "repeat call")
	assert.Equal(t, []string{"FooUnsint"}, ShortNames(id, reversed))
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "Foo<2,2>", Compact("Foo<2,2 >"))
	assert.Equal(t, "Foo<2,2>", Compact(" Foo< 2, 2>\t"))
}

func TestTable_Validate(t *testing.T) {
	t.Run("default table is valid", func(t *testing.T) {
		require.NoError(t, DefaultTable().Validate())
	})

	t.Run("pattern inside replacement", func(t *testing.T) {
		err := Table{{Pattern: "int", Replacement: "Integer"}, {Pattern: "x", Replacement: "int"}}.Validate()
		require.ErrorIs(t, err, ErrSelfMatching)
	})

	t.Run("empty pattern", func(t *testing.T) {
		err := Table{{Pattern: "", Replacement: "A"}}.Validate()
		require.ErrorIs(t, err, ErrEmptyPattern)
	})
}

func TestTable_YAML(t *testing.T) {
	t.Run("mapping keeps order", func(t *testing.T) {
		var table Table

		err := yaml.Unmarshal([]byte("unsigned int: Uint\nunsigned: U\n\"*\": Ptr\n"), &table)
		require.NoError(t, err)

		assert.Equal(t, Table{
			{Pattern: "unsigned int", Replacement: "Uint"},
			{Pattern: "unsigned", Replacement: "U"},
			{Pattern: "*", Replacement: "Ptr"},
		}, table)
	})

	t.Run("list form", func(t *testing.T) {
		var table Table

		err := yaml.Unmarshal([]byte("- pattern: double\n  replacement: D\n"), &table)
		require.NoError(t, err)
		assert.Equal(t, Table{{Pattern: "double", Replacement: "D"}}, table)
	})

	t.Run("scalar rejected", func(t *testing.T) {
		var table Table

		require.Error(t, yaml.Unmarshal([]byte("double"), &table))
	})

	t.Run("marshal round trip keeps order", func(t *testing.T) {
		data, err := yaml.Marshal(DefaultTable())
		require.NoError(t, err)

		var back Table
		require.NoError(t, yaml.Unmarshal(data, &back))
		assert.Equal(t, DefaultTable(), back)
	})
}

func TestTidyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"::Bar<2> *", "_Bar_lt_2_gt_Ptr"},
		{"::foo::bar<double, 2>", "_foo_bar_lt_double_2_gt_"},
		{"std::vector<double> const &", "std_vector_lt_double_gt_constRef"},
		{"Foo<-1>", "Foo_lt_neg1_gt_"},
		{"int", "int"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TidyName(tt.in))
		})
	}
}

func TestNeedsTypedef(t *testing.T) {
	assert.False(t, NeedsTypedef("void"))
	assert.False(t, NeedsTypedef("int"))
	assert.False(t, NeedsTypedef("unsigned int"))
	assert.True(t, NeedsTypedef("::Bar<2> *"))
	assert.True(t, NeedsTypedef("double &"))
	assert.True(t, NeedsTypedef("::ns::Thing"))
}

func TestSplitTemplateName(t *testing.T) {
	tests := []struct {
		in   string
		base string
		args []string
		ok   bool
	}{
		{"Foo<2>", "Foo", []string{"2"}, true},
		{"Foo<2, 3 >", "Foo", []string{"2", "3"}, true},
		{"Holder<std::vector<double, alloc>, Node *>", "Holder", []string{"std::vector<double, alloc>", "Node *"}, true},
		{"Foo<>", "Foo", []string{}, true},
		{"Foo", "Foo", nil, false},
		{"operator<", "operator<", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			base, args, ok := SplitTemplateName(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.args, args)
		})
	}
}
