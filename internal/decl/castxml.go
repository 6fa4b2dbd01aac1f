package decl

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedXML is returned when castxml output cannot be interpreted.
var ErrMalformedXML = errors.New("malformed castxml output")

// xmlNode is any castxml element. Elements are kept in document order.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}

	return ""
}

func (n *xmlNode) flag(name string) bool {
	v := n.attr(name)
	return v != "" && v != "0"
}

// reader turns a castxml document into a Set.
type reader struct {
	byID    map[string]*xmlNode
	files   map[string]string
	classes map[string]*Class
	scopes  map[string]string
	types   map[string]Type
	// resolving guards against malformed self-referencing types.
	resolving map[string]bool
}

// ReadCastXML decodes castxml output (--castxml-output=1) into a declaration set.
func ReadCastXML(r io.Reader) (*Set, error) {
	var root xmlNode

	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode castxml output: %w", err)
	}

	if root.XMLName.Local != "CastXML" && root.XMLName.Local != "GCC_XML" {
		return nil, fmt.Errorf("unexpected root element %q: %w", root.XMLName.Local, ErrMalformedXML)
	}

	rd := &reader{
		byID:      make(map[string]*xmlNode, len(root.Children)),
		files:     map[string]string{},
		classes:   map[string]*Class{},
		scopes:    map[string]string{},
		types:     map[string]Type{},
		resolving: map[string]bool{},
	}

	for i := range root.Children {
		n := &root.Children[i]
		if id := n.attr("id"); id != "" {
			rd.byID[id] = n
		}

		if n.XMLName.Local == "File" {
			rd.files[n.attr("id")] = n.attr("name")
		}
	}

	return rd.build(root.Children)
}

func (rd *reader) build(nodes []xmlNode) (*Set, error) {
	set := &Set{}

	// Records first so members and bases can refer to them.
	for i := range nodes {
		n := &nodes[i]
		if kind, ok := recordKind(n.XMLName.Local); ok {
			c := &Class{
				Name:       n.attr("name"),
				Kind:       kind,
				Access:     ParseAccess(n.attr("access")),
				Abstract:   n.flag("abstract"),
				Incomplete: n.flag("incomplete"),
				Location:   rd.location(n),
			}
			rd.classes[n.attr("id")] = c
			set.Classes = append(set.Classes, c)
		}
	}

	for i := range nodes {
		n := &nodes[i]
		id := n.attr("id")

		switch n.XMLName.Local {
		case "Class", "Struct", "Union":
			c := rd.classes[id]
			c.Context = rd.scope(n.attr("context"))

			if owner, ok := rd.classes[n.attr("context")]; ok {
				c.Owner = owner
				owner.Nested = append(owner.Nested, c)
			}

			for j := range n.Children {
				b := &n.Children[j]
				if b.XMLName.Local != "Base" {
					continue
				}

				base := Base{
					Class:   rd.classes[b.attr("type")],
					Access:  ParseAccess(b.attr("access")),
					Virtual: b.flag("virtual"),
				}

				t, err := rd.typeOf(b.attr("type"))
				if err != nil {
					return nil, err
				}

				base.Name = t.Decl
				c.Bases = append(c.Bases, base)
			}

		case "Constructor", "Method":
			owner, ok := rd.classes[n.attr("context")]
			if !ok {
				continue
			}

			f, err := rd.function(n)
			if err != nil {
				return nil, err
			}

			f.Owner = owner
			if n.XMLName.Local == "Constructor" {
				owner.Constructors = append(owner.Constructors, f)
			} else {
				owner.Methods = append(owner.Methods, f)
			}

		case "Function":
			if _, inClass := rd.classes[n.attr("context")]; inClass {
				continue
			}

			f, err := rd.function(n)
			if err != nil {
				return nil, err
			}

			set.Functions = append(set.Functions, f)

		case "Variable":
			if _, inClass := rd.classes[n.attr("context")]; inClass {
				continue
			}

			t, err := rd.typeOf(n.attr("type"))
			if err != nil {
				return nil, err
			}

			set.Variables = append(set.Variables, &Variable{
				Name:     n.attr("name"),
				Context:  rd.scope(n.attr("context")),
				Type:     t,
				Location: rd.location(n),
			})

		case "Enumeration":
			e := &Enum{
				Name:     n.attr("name"),
				Context:  rd.scope(n.attr("context")),
				Access:   ParseAccess(n.attr("access")),
				Location: rd.location(n),
			}

			for j := range n.Children {
				v := &n.Children[j]
				if v.XMLName.Local == "EnumValue" {
					e.Values = append(e.Values, EnumValue{Name: v.attr("name"), Value: v.attr("init")})
				}
			}

			if owner, ok := rd.classes[n.attr("context")]; ok {
				e.Owner = owner
				owner.Enums = append(owner.Enums, e)
			}
		}
	}

	return set, nil
}

func recordKind(element string) (ClassKind, bool) {
	switch element {
	case "Class":
		return KindClass, true
	case "Struct":
		return KindStruct, true
	case "Union":
		return KindUnion, true
	default:
		return 0, false
	}
}

func (rd *reader) function(n *xmlNode) (*Function, error) {
	f := &Function{
		Name:       n.attr("name"),
		Context:    rd.scope(n.attr("context")),
		Access:     ParseAccess(n.attr("access")),
		Const:      n.flag("const"),
		Static:     n.flag("static"),
		Artificial: n.flag("artificial"),
		Location:   rd.location(n),
	}

	switch {
	case n.flag("pure_virtual"):
		f.Virtuality = PureVirtual
	case n.flag("virtual"):
		f.Virtuality = Virtual
	}

	if ret := n.attr("returns"); ret != "" {
		t, err := rd.typeOf(ret)
		if err != nil {
			return nil, fmt.Errorf("return type of %s: %w", f.Name, err)
		}

		f.Returns = t
	}

	for i := range n.Children {
		a := &n.Children[i]
		if a.XMLName.Local != "Argument" {
			continue
		}

		t, err := rd.typeOf(a.attr("type"))
		if err != nil {
			return nil, fmt.Errorf("argument of %s: %w", f.Name, err)
		}

		f.Arguments = append(f.Arguments, Argument{
			Name:    a.attr("name"),
			Type:    t,
			Default: a.attr("default"),
		})
	}

	return f, nil
}

func (rd *reader) location(n *xmlNode) Location {
	line, _ := strconv.Atoi(n.attr("line"))

	return Location{File: rd.files[n.attr("file")], Line: line}
}

// scope returns the qualified name of a context id. The global namespace is "".
func (rd *reader) scope(id string) string {
	if id == "" {
		return ""
	}

	if s, ok := rd.scopes[id]; ok {
		return s
	}

	n, ok := rd.byID[id]
	if !ok {
		return ""
	}

	name := n.attr("name")
	if name == "::" || name == "" {
		rd.scopes[id] = ""
		return ""
	}

	rd.scopes[id] = "" // cycle guard
	s := qualify(rd.scope(n.attr("context")), name)
	rd.scopes[id] = s

	return s
}

// typeOf resolves a type id into its declaration string, in the form
// "::Foo<2> const &" or "unsigned int *".
func (rd *reader) typeOf(id string) (Type, error) {
	if t, ok := rd.types[id]; ok {
		return t, nil
	}

	if rd.resolving[id] {
		return Type{}, fmt.Errorf("type %s refers to itself: %w", id, ErrMalformedXML)
	}

	rd.resolving[id] = true
	defer delete(rd.resolving, id)

	// castxml suffixes cv-qualified ids, e.g. "_12c" for "_12 const".
	n, ok := rd.byID[id]
	if !ok {
		base := strings.TrimRight(id, "cvr")
		if base == id || base == "" {
			return Type{}, fmt.Errorf("unknown type id %q: %w", id, ErrMalformedXML)
		}

		inner, err := rd.typeOf(base)
		if err != nil {
			return Type{}, err
		}

		t := inner
		t.Decl = inner.Decl + cvSuffix(strings.ContainsRune(id[len(base):], 'c'), strings.ContainsRune(id[len(base):], 'v'))
		rd.types[id] = t

		return t, nil
	}

	var t Type

	switch n.XMLName.Local {
	case "FundamentalType":
		t = Type{Decl: n.attr("name")}

	case "Class", "Struct", "Union", "Enumeration", "Typedef":
		t = Type{Decl: qualify(rd.scope(n.attr("context")), n.attr("name"))}

		if n.XMLName.Local == "Typedef" {
			inner, err := rd.typeOf(n.attr("type"))
			if err != nil {
				return Type{}, err
			}

			t.IsPointer, t.IsReference = inner.IsPointer, inner.IsReference
		}

	case "ElaboratedType":
		inner, err := rd.typeOf(n.attr("type"))
		if err != nil {
			return Type{}, err
		}

		t = inner

	case "CvQualifiedType":
		inner, err := rd.typeOf(n.attr("type"))
		if err != nil {
			return Type{}, err
		}

		t = inner
		t.Decl = inner.Decl + cvSuffix(n.flag("const"), n.flag("volatile"))

	case "PointerType":
		inner, err := rd.typeOf(n.attr("type"))
		if err != nil {
			return Type{}, err
		}

		if target := rd.byID[n.attr("type")]; target != nil && target.XMLName.Local == "FunctionType" {
			t = Type{Decl: strings.Replace(inner.Decl, " (", " (*)(", 1), IsPointer: true}
		} else {
			t = Type{Decl: inner.Decl + " *", IsPointer: true}
		}

	case "ReferenceType":
		inner, err := rd.typeOf(n.attr("type"))
		if err != nil {
			return Type{}, err
		}

		t = Type{Decl: inner.Decl + " &", IsReference: true}

	case "ArrayType":
		inner, err := rd.typeOf(n.attr("type"))
		if err != nil {
			return Type{}, err
		}

		size := ""
		if m, err := strconv.Atoi(n.attr("max")); err == nil {
			size = strconv.Itoa(m + 1)
		}

		t = Type{Decl: inner.Decl + "[" + size + "]"}

	case "FunctionType":
		ret, err := rd.typeOf(n.attr("returns"))
		if err != nil {
			return Type{}, err
		}

		var args []string

		for i := range n.Children {
			a := &n.Children[i]
			if a.XMLName.Local != "Argument" {
				continue
			}

			at, err := rd.typeOf(a.attr("type"))
			if err != nil {
				return Type{}, err
			}

			args = append(args, at.Decl)
		}

		t = Type{Decl: ret.Decl + " ( " + strings.Join(args, ", ") + " )"}

	default:
		t = Type{Decl: "?unknown?"}
	}

	rd.types[id] = t

	return t, nil
}

func cvSuffix(isConst, isVolatile bool) string {
	s := ""
	if isConst {
		s += " const"
	}

	if isVolatile {
		s += " volatile"
	}

	return s
}
