package diagnostic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Diagnostics {
	d := &Diagnostics{}
	d.AddInfo(CodeNoCallPolicy, "no pointer_call_policy set", "shapes/Foo", "Bar * Get()")
	d.AddWarning(CodeUnresolved, "no class declaration found", "shapes/Circle", "Circle")
	d.AddError(CodeMissingName, "module has no name", "", "modules[1]")

	return d
}

func TestWrite(t *testing.T) {
	var b bytes.Buffer

	require.NoError(t, Write(&b, sample(), ReportOptions{}))
	assert.Equal(t, "error: modules[1]: [missing_name] module has no name\n"+
		"warning: [shapes/Circle] Circle: [unresolved_feature] no class declaration found\n"+
		"1 error(s), 1 warning(s), 1 info(s)\n", b.String())
}

func TestWrite_InfosAndColor(t *testing.T) {
	var b bytes.Buffer

	require.NoError(t, Write(&b, sample(), ReportOptions{Color: true, IncludeInfos: true}))

	out := b.String()
	assert.Contains(t, out, ansiRed+"error"+ansiReset+": ")
	assert.Contains(t, out, ansiYellow+"warning"+ansiReset+": ")
	assert.Contains(t, out, ansiCyan+"info"+ansiReset+": [shapes/Foo] Bar * Get(): [no_call_policy]")
}

func TestDiagnostics(t *testing.T) {
	d := sample()

	assert.Equal(t, 3, d.Len())
	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	assert.EqualError(t, d.Error(), "modules[1]: [missing_name] module has no name")
	assert.Len(t, d.WithCode(CodeUnresolved), 1)

	other := &Diagnostics{}
	other.Merge(*d)
	assert.Equal(t, d, other)

	assert.NoError(t, (&Diagnostics{}).Error())
}

func TestDiagnostic_Suggestions(t *testing.T) {
	diag := Diagnostic{Code: CodeUnresolved, Message: "not found", Suggestions: []string{"Circle", "Cycle"}}
	assert.Equal(t, "[unresolved_feature] not found (did you mean Circle, Cycle?)", diag.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
