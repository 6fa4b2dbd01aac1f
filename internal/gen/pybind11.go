package gen

// Default pybind11 templates, keyed like the YAML override file.
var pybind11Templates = map[string]string{
	KeyClassCppHeader: `#include <pybind11/pybind11.h>
#include <pybind11/stl.h>
{{.Includes}}
#include "{{.ShortName}}.cppwg.hpp"

namespace py = pybind11;
typedef {{.FullName}} {{.ShortName}};
{{- if .SmartPtrHandle}}
{{.SmartPtrHandle}}
{{- end}}
`,

	KeyClassHppHeader: `#ifndef {{.ShortName}}_hpp__pyplusplus_wrapper
#define {{.ShortName}}_hpp__pyplusplus_wrapper
namespace py = pybind11;
void register_{{.ShortName}}_class(py::module &m);
#endif // {{.ShortName}}_hpp__pyplusplus_wrapper
`,

	KeyClassVirtualOverrideHeader: `class {{.ShortName}}_Overrides : public {{.ShortName}}{
    public:
    using {{.ShortName}}::{{.BaseName}};
`,

	KeyClassVirtualOverrideFooter: `
};
`,

	KeyClassDefinition: `void register_{{.ShortName}}_class(py::module &m){
py::class_<{{.ShortName}} {{.Overrides}} {{.PtrSupport}} {{.Bases}} >(m, "{{.ShortName}}")
`,

	KeyClassConstructor: `        .def(py::init<{{.ArgSignature}} >(){{.DefaultArgs}})
`,

	KeyClassMethod: `        .def{{.DefAdorn}}(
            "{{.MethodName}}",
            ({{.ReturnType}}({{.SelfPtr}})({{.ArgSignature}}){{.ConstAdorn}}) &{{.ShortName}}::{{.MethodName}},
            {{.Docs}} {{.DefaultArgs}} {{.CallPolicy}})
`,

	KeyMethodVirtualOverride: `    {{.ReturnType}} {{.MethodName}}({{.ArgString}}){{.ConstAdorn}} override {
        PYBIND11_OVERRIDE{{.OverloadAdorn}}(
            {{.TidyReturnType}},
            {{.ShortName}},
            {{.MethodName}},
            {{.ArgNames}});
    }
`,

	KeySmartPointerHolder: `PYBIND11_DECLARE_HOLDER_TYPE(T, {{.Type}}<T>);`,

	KeyStructEnum: `void register_{{.ShortName}}_class(py::module &m){
    py::class_<{{.ClassName}}> myclass(m, "{{.ShortName}}");
    py::enum_<{{.ClassName}}::{{.EnumName}}>(myclass, "{{.EnumName}}")
{{- range .Values}}
        .value("{{.}}", {{$.ClassName}}::{{$.EnumName}}::{{.}})
{{- end}}
    .export_values();
}
`,

	KeyFreeFunction: `    m.def{{.DefAdorn}}("{{.FunctionName}}", &{{.QualifiedName}}, {{.Docs}} {{.DefaultArgs}});
`,

	KeyVariable: `    m.attr("{{.Name}}") = {{.QualifiedName}};
`,

	KeyModuleMain: `#include <pybind11/pybind11.h>
{{- if .CommonInclude}}
#include "{{.HeaderCollection}}"
{{- end}}
{{- range .ClassHeaders}}
#include "{{.}}"
{{- end}}

namespace py = pybind11;

PYBIND11_MODULE({{.FullModuleName}}, m)
{
{{range .FreeFunctions}}{{.}}{{end}}{{range .Variables}}{{.}}{{end -}}
{{range .ShortNames}}    register_{{.}}_class(m);
{{end}}{{.ModuleCode}}}
`,

	KeyHeaderCollection: `#ifndef {{.Package}}_HEADERS_HPP_
#define {{.Package}}_HEADERS_HPP_

// Includes
{{range .Includes}}#include "{{.}}"
{{end}}
// Instantiate Template Classes
{{range .Instantiations}}template class {{.FullName}};
{{end}}
// Typedefs for nicer naming
namespace cppwg
{
{{range .Instantiations}}typedef {{.FullName}} {{.ShortName}};
{{end}}} // namespace cppwg

#endif // {{.Package}}_HEADERS_HPP_
`,
}
