package gen

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Template keys. A template override file maps these keys to template text.
const (
	KeyClassCppHeader             = "class_cpp_header"
	KeyClassHppHeader             = "class_hpp_header"
	KeyClassVirtualOverrideHeader = "class_virtual_override_header"
	KeyClassVirtualOverrideFooter = "class_virtual_override_footer"
	KeyClassDefinition            = "class_definition"
	KeyClassConstructor           = "class_constructor"
	KeyClassMethod                = "class_method"
	KeyMethodVirtualOverride      = "method_virtual_override"
	KeySmartPointerHolder         = "smart_pointer_holder"
	KeyStructEnum                 = "struct_enum"
	KeyFreeFunction               = "free_function"
	KeyVariable                   = "variable"
	KeyModuleMain                 = "module_main"
	KeyHeaderCollection           = "header_collection"
)

// ErrUnknownTemplate is returned for a template key outside the known set.
var ErrUnknownTemplate = errors.New("unknown template key")

// Templates is a complete, parsed template set.
type Templates struct {
	set map[string]*template.Template
}

// Keys returns the known template keys in sorted order.
func Keys() []string {
	return slices.Sorted(maps.Keys(pybind11Templates))
}

// DefaultTemplates returns the pybind11 template set.
func DefaultTemplates() Templates {
	t, err := ParseTemplates(nil)
	if err != nil {
		panic(err)
	}

	return t
}

// ParseTemplates parses the default set with the given texts replacing
// their keys. Unknown keys are an error.
func ParseTemplates(overrides map[string]string) (Templates, error) {
	texts := maps.Clone(pybind11Templates)

	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		if _, ok := texts[key]; !ok {
			return Templates{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownTemplate, key, strings.Join(Keys(), ", "))
		}

		texts[key] = overrides[key]
	}

	t := Templates{set: make(map[string]*template.Template, len(texts))}

	for key, text := range texts {
		parsed, err := template.New(key).Option("missingkey=error").Parse(text)
		if err != nil {
			return Templates{}, fmt.Errorf("failed to parse template %s: %w", key, err)
		}

		t.set[key] = parsed
	}

	return t, nil
}

// LoadTemplates reads a YAML mapping of template keys to text and parses it
// over the defaults.
func LoadTemplates(path string) (Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Templates{}, fmt.Errorf("failed to read templates file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Templates{}, fmt.Errorf("failed to parse templates file %s: %w", path, err)
	}

	t, err := ParseTemplates(overrides)
	if err != nil {
		return Templates{}, fmt.Errorf("templates file %s: %w", path, err)
	}

	return t, nil
}

// Render executes the template stored under key.
func (t Templates) Render(key string, data any) (string, error) {
	tmpl, ok := t.set[key]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownTemplate, key)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", key, err)
	}

	return b.String(), nil
}
