package gen

import (
	"fmt"
	"path"
	"strings"

	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/feature"
	"wrapper-generator/internal/mangle"
	"wrapper-generator/internal/plan"
	"wrapper-generator/internal/source"
)

// GeneratedFile is one output file, its path relative to the wrapper root.
type GeneratedFile struct {
	Path    string
	Content []byte
}

// Generator renders plans with a template set.
type Generator struct {
	tree      *feature.Tree
	templates Templates
}

// NewGenerator returns a generator for plans built from tree.
func NewGenerator(tree *feature.Tree, templates Templates) *Generator {
	return &Generator{tree: tree, templates: templates}
}

// Generate renders every module of p. Files are returned per module: each
// class header and source in registration order, then the module source.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, mp := range p.Modules {
		for _, cp := range mp.Classes {
			hpp, err := g.templates.Render(KeyClassHppHeader, struct{ ShortName string }{cp.ShortName})
			if err != nil {
				return nil, fmt.Errorf("failed to generate %s: %w", cp.Label, err)
			}

			cpp, err := g.classSource(cp)
			if err != nil {
				return nil, fmt.Errorf("failed to generate %s: %w", cp.Label, err)
			}

			base := path.Join(mp.Name, cp.ShortName+source.WrapperExt)
			files = append(files,
				GeneratedFile{Path: base + ".hpp", Content: []byte(hpp)},
				GeneratedFile{Path: base + ".cpp", Content: []byte(cpp)},
			)
		}

		moduleSrc, err := g.moduleSource(p.Package, mp)
		if err != nil {
			return nil, fmt.Errorf("failed to generate module %s: %w", mp.Name, err)
		}

		files = append(files, GeneratedFile{Path: path.Join(mp.Name, mp.Name+".main.cpp"), Content: []byte(moduleSrc)})
	}

	return files, nil
}

// ModuleName is the Python extension name of a module.
func ModuleName(pkg, module string) string {
	return "_" + pkg + "_" + module
}

type classHeaderData struct {
	Includes       string
	ShortName      string
	FullName       string
	SmartPtrHandle string
}

func (g *Generator) classSource(cp *plan.ClassPlan) (string, error) {
	var b strings.Builder

	custom := customFor(g.tree, cp.Feature)

	handle := ""
	if cp.SmartPtrType != "" {
		var err error
		if handle, err = g.templates.Render(KeySmartPointerHolder, struct{ Type string }{cp.SmartPtrType}); err != nil {
			return "", err
		}
	}

	header, err := g.templates.Render(KeyClassCppHeader, classHeaderData{
		Includes:       g.includes(cp.Feature),
		ShortName:      cp.ShortName,
		FullName:       cp.Decl.QualifiedName(),
		SmartPtrHandle: handle,
	})
	if err != nil {
		return "", err
	}

	b.WriteString(header)

	for _, line := range g.tree.PrefixCode(cp.Feature) {
		b.WriteString(line + "\n")
	}

	if custom != nil {
		b.WriteString(custom.ClassPreCode(cp.ShortName))
	}

	if cp.StructEnum != nil {
		text, err := g.structEnum(cp)
		if err != nil {
			return "", err
		}

		b.WriteString(text)

		return b.String(), nil
	}

	for _, td := range cp.Typedefs {
		fmt.Fprintf(&b, "typedef %s %s;\n", td.Type, td.Name)
	}

	if cp.HasOverrides() {
		text, err := g.overrideClass(cp)
		if err != nil {
			return "", err
		}

		b.WriteString(text)
	}

	def, err := g.classDefinition(cp)
	if err != nil {
		return "", err
	}

	b.WriteString(def)

	for _, line := range g.tree.ExtraCode(cp.Feature) {
		b.WriteString("        " + line + "\n")
	}

	if custom != nil {
		b.WriteString(custom.ClassDefCode(cp.ShortName))
	}

	b.WriteString("    ;\n}\n")

	return b.String(), nil
}

// includes renders the include block of a class source: the header
// collection, or the gathered source includes followed by the class header.
func (g *Generator) includes(id feature.ID) string {
	if g.tree.CommonIncludeFile(id) {
		return includeLine(HeaderCollectionFile)
	}

	var b strings.Builder

	for _, inc := range g.tree.SourceIncludes(id) {
		b.WriteString(includeLine(inc))
	}

	if n := g.tree.Node(id); n != nil && n.SourceFile != "" {
		b.WriteString(includeLine(n.SourceFile))
	}

	return b.String()
}

type structEnumData struct {
	ShortName string
	ClassName string
	EnumName  string
	Values    []string
}

func (g *Generator) structEnum(cp *plan.ClassPlan) (string, error) {
	values := make([]string, len(cp.StructEnum.Values))
	for i, v := range cp.StructEnum.Values {
		values[i] = v.Name
	}

	return g.templates.Render(KeyStructEnum, structEnumData{
		ShortName: cp.ShortName,
		ClassName: cp.ShortName,
		EnumName:  cp.StructEnum.Name,
		Values:    values,
	})
}

type overrideData struct {
	ReturnType     string
	MethodName     string
	ArgString      string
	ConstAdorn     string
	OverloadAdorn  string
	TidyReturnType string
	ShortName      string
	ArgNames       string
}

func (g *Generator) overrideClass(cp *plan.ClassPlan) (string, error) {
	var b strings.Builder

	baseName := cp.Decl.Name
	if name, _, ok := mangle.SplitTemplateName(baseName); ok {
		baseName = name
	}

	header, err := g.templates.Render(KeyClassVirtualOverrideHeader, struct{ ShortName, BaseName string }{cp.ShortName, baseName})
	if err != nil {
		return "", err
	}

	b.WriteString(header)

	for _, o := range cp.Overrides {
		names := argNames(o.Decl.Arguments)
		params := make([]string, len(names))

		for i, a := range o.Decl.Arguments {
			params[i] = a.Type.Decl + " " + names[i]
		}

		data := overrideData{
			ReturnType:     o.Decl.Returns.Decl,
			MethodName:     o.Decl.Name,
			ArgString:      strings.Join(params, ", "),
			ConstAdorn:     constAdorn(o.Decl),
			TidyReturnType: o.ReturnType,
			ShortName:      cp.ShortName,
			ArgNames:       strings.Join(names, ", "),
		}
		if o.Pure {
			data.OverloadAdorn = "_PURE"
		}

		text, err := g.templates.Render(KeyMethodVirtualOverride, data)
		if err != nil {
			return "", err
		}

		b.WriteString(text)
	}

	footer, err := g.templates.Render(KeyClassVirtualOverrideFooter, nil)
	if err != nil {
		return "", err
	}

	b.WriteString(footer)

	return b.String(), nil
}

type classDefinitionData struct {
	ShortName  string
	Overrides  string
	PtrSupport string
	Bases      string
}

type constructorData struct {
	ArgSignature string
	DefaultArgs  string
}

type methodData struct {
	DefAdorn     string
	MethodName   string
	ReturnType   string
	SelfPtr      string
	ArgSignature string
	ConstAdorn   string
	ShortName    string
	Docs         string
	DefaultArgs  string
	CallPolicy   string
}

func (g *Generator) classDefinition(cp *plan.ClassPlan) (string, error) {
	var b strings.Builder

	data := classDefinitionData{ShortName: cp.ShortName}
	if cp.HasOverrides() {
		data.Overrides = ", " + cp.ShortName + "_Overrides"
	}

	if cp.SmartPtrType != "" {
		data.PtrSupport = ", " + cp.SmartPtrType + "<" + cp.ShortName + " > "
	}

	for _, base := range cp.Bases {
		data.Bases += ", " + base + " "
	}

	def, err := g.templates.Render(KeyClassDefinition, data)
	if err != nil {
		return "", err
	}

	b.WriteString(def)

	for _, ctor := range cp.IncludedConstructors() {
		text, err := g.templates.Render(KeyClassConstructor, constructorData{
			ArgSignature: strings.Join(ctor.Decl.ArgumentTypes(), ", "),
			DefaultArgs:  defaultArgs(ctor.Decl.Arguments),
		})
		if err != nil {
			return "", err
		}

		b.WriteString(text)
	}

	for _, m := range cp.IncludedMethods() {
		data := methodData{
			MethodName:   m.Decl.Name,
			ReturnType:   m.Decl.Returns.Decl,
			SelfPtr:      "*",
			ArgSignature: strings.Join(m.Decl.ArgumentTypes(), ", "),
			ConstAdorn:   constAdorn(m.Decl),
			ShortName:    cp.ShortName,
			Docs:         `" "`,
			DefaultArgs:  defaultArgs(m.Decl.Arguments),
		}

		if m.Decl.Static {
			data.DefAdorn = "_static"
		} else {
			data.SelfPtr = cp.ShortName + "::*"
		}

		if m.CallPolicy != "" {
			data.CallPolicy = ", py::return_value_policy::" + m.CallPolicy
		}

		text, err := g.templates.Render(KeyClassMethod, data)
		if err != nil {
			return "", err
		}

		b.WriteString(text)
	}

	return b.String(), nil
}

type moduleData struct {
	CommonInclude    bool
	HeaderCollection string
	ClassHeaders     []string
	FullModuleName   string
	FreeFunctions    []string
	Variables        []string
	ShortNames       []string
	ModuleCode       string
}

type functionData struct {
	DefAdorn      string
	FunctionName  string
	QualifiedName string
	Docs          string
	DefaultArgs   string
}

func (g *Generator) moduleSource(pkg string, mp *plan.ModulePlan) (string, error) {
	data := moduleData{
		CommonInclude:    g.tree.CommonIncludeFile(mp.Feature),
		HeaderCollection: HeaderCollectionFile,
		FullModuleName:   ModuleName(pkg, mp.Name),
	}

	for _, cp := range mp.Classes {
		data.ClassHeaders = append(data.ClassHeaders, cp.ShortName+source.WrapperExt+".hpp")
		data.ShortNames = append(data.ShortNames, cp.ShortName)
	}

	for _, fp := range mp.FreeFunctions {
		if !fp.Included {
			continue
		}

		text, err := g.templates.Render(KeyFreeFunction, functionData{
			FunctionName:  fp.Decl.Name,
			QualifiedName: fp.Decl.QualifiedName(),
			Docs:          `" "`,
			DefaultArgs:   defaultArgs(fp.Decl.Arguments),
		})
		if err != nil {
			return "", err
		}

		data.FreeFunctions = append(data.FreeFunctions, text)
	}

	for _, vp := range mp.Variables {
		if !vp.Included {
			continue
		}

		text, err := g.templates.Render(KeyVariable, struct{ Name, QualifiedName string }{vp.Decl.Name, vp.Decl.QualifiedName()})
		if err != nil {
			return "", err
		}

		data.Variables = append(data.Variables, text)
	}

	if custom := customFor(g.tree, mp.Feature); custom != nil {
		data.ModuleCode = custom.ModuleCode(mp.Name)
	}

	return g.templates.Render(KeyModuleMain, data)
}

// defaultArgs renders keyword arguments with their defaults. Nothing is
// rendered unless every argument is named.
func defaultArgs(args []decl.Argument) string {
	var b strings.Builder

	for _, a := range args {
		if a.Name == "" {
			return ""
		}

		fmt.Fprintf(&b, `, py::arg("%s")`, a.Name)

		if a.Default != "" {
			b.WriteString(" = " + a.Default)
		}
	}

	return b.String()
}

// argNames returns argument names, numbering unnamed ones.
func argNames(args []decl.Argument) []string {
	out := make([]string, len(args))

	for i, a := range args {
		out[i] = a.Name
		if out[i] == "" {
			out[i] = fmt.Sprintf("arg%d", i)
		}
	}

	return out
}

func constAdorn(f *decl.Function) string {
	if f.Const {
		return " const"
	}

	return ""
}
