package plan

import (
	"fmt"
	"slices"
	"strings"

	"wrapper-generator/internal/common"
	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/feature"
	"wrapper-generator/internal/mangle"
)

// excludes are the gathered exclusion lists of one feature. calldef entries
// are compacted; the others match as substrings.
type excludes struct {
	calldef  []string
	ctorArgs []string
	returns  []string
	args     []string
	methods  []string
}

func excludesFor(tree *feature.Tree, id feature.ID) excludes {
	calldef := tree.CalldefExcludes(id)
	compact := make([]string, len(calldef))

	for i, c := range calldef {
		compact[i] = mangle.Compact(c)
	}

	return excludes{
		calldef:  compact,
		ctorArgs: tree.ConstructorArgTypeExcludes(id),
		returns:  tree.ReturnTypeExcludes(id),
		args:     tree.ArgTypeExcludes(id),
		methods:  tree.ExcludedMethods(id),
	}
}

// returnReason checks a return type against calldef and return type excludes.
func (ex excludes) returnReason(t decl.Type) ExclusionReason {
	switch {
	case slices.Contains(ex.calldef, mangle.Compact(t.Decl)):
		return ReasonCalldefExclude
	case common.ContainsAny(t.Decl, ex.returns):
		return ReasonReturnTypeExclude
	default:
		return ReasonNone
	}
}

// argReason checks argument types against calldef excludes, by full type or
// by first token, and arg type excludes.
func (ex excludes) argReason(args []decl.Argument) ExclusionReason {
	for _, a := range args {
		if slices.Contains(ex.calldef, mangle.Compact(a.Type.Decl)) ||
			slices.Contains(ex.calldef, mangle.Compact(a.Type.FirstToken())) {
			return ReasonCalldefExclude
		}

		if common.ContainsAny(a.Type.Decl, ex.args) {
			return ReasonArgTypeExclude
		}
	}

	return ReasonNone
}

// classJob is one class instantiation to plan.
type classJob struct {
	node  *feature.Node
	slot  int
	class *decl.Class
}

func planClass(tree *feature.Tree, job classJob, exposed map[string]struct{}, diags *diagnostic.Diagnostics) *ClassPlan {
	n, c := job.node, job.class

	p := &ClassPlan{
		Feature:      n.ID,
		Label:        tree.Label(n.ID),
		ShortName:    tree.ShortNames(n.ID)[job.slot],
		FullName:     tree.FullNames(n.ID)[job.slot],
		Decl:         c,
		SmartPtrType: tree.SmartPtrType(n.ID),
	}

	if c.IsStruct() && common.IsSingle(c.Enums) {
		p.StructEnum = c.Enums[0]
		return p
	}

	ex := excludesFor(tree, n.ID)

	p.Abstract = isAbstract(c)
	p.Overrides, p.Typedefs = virtualSurface(c)
	p.Constructors = constructors(c, p.Abstract, ex)
	p.Methods = methods(c, ex)
	p.Bases = exposedBases(c, exposed)

	for i := range p.Methods {
		m := &p.Methods[i]
		if m.Included {
			m.CallPolicy = callPolicy(tree, n.ID, m, p.Label, diags)
		}
	}

	return p
}

func isAbstract(c *decl.Class) bool {
	if c.Abstract {
		return true
	}

	for _, m := range c.Methods {
		if m.Virtuality == decl.PureVirtual {
			return true
		}
	}

	return false
}

func hasPrivatePureVirtual(c *decl.Class) bool {
	for _, m := range c.Methods {
		if m.Virtuality == decl.PureVirtual && m.Access == decl.AccessPrivate {
			return true
		}
	}

	return false
}

func hasAbstractBase(c *decl.Class) bool {
	for _, b := range c.Bases {
		if b.Class != nil && isAbstract(b.Class) {
			return true
		}
	}

	return false
}

// effectiveVirtual reports whether m is virtual in c, either as declared or
// because a base declares a virtual method with the same signature.
func effectiveVirtual(c *decl.Class, m *decl.Function) bool {
	if m.Virtuality.IsVirtual() {
		return true
	}

	seen := map[*decl.Class]bool{c: true}

	var walk func(*decl.Class) bool

	walk = func(k *decl.Class) bool {
		for _, b := range k.Bases {
			if b.Class == nil || seen[b.Class] {
				continue
			}

			seen[b.Class] = true

			for _, bm := range b.Class.Methods {
				if bm.Virtuality.IsVirtual() && bm.SameSignature(m) {
					return true
				}
			}

			if walk(b.Class) {
				return true
			}
		}

		return false
	}

	return walk(c)
}

// virtualSurface returns the trampoline overrides of c and the aliases their
// return types need. Private methods get no override.
func virtualSurface(c *decl.Class) ([]Override, []Typedef) {
	var (
		overrides []Override
		typedefs  []Typedef
	)

	for _, m := range c.Methods {
		if m.Access == decl.AccessPrivate || !effectiveVirtual(c, m) {
			continue
		}

		ret := m.Returns.Decl
		if mangle.NeedsTypedef(ret) {
			alias := mangle.TidyName(ret)
			if !slices.ContainsFunc(typedefs, func(t Typedef) bool { return t.Name == alias }) {
				typedefs = append(typedefs, Typedef{Name: alias, Type: ret})
			}

			ret = alias
		}

		overrides = append(overrides, Override{
			Decl:       m,
			Pure:       m.Virtuality == decl.PureVirtual,
			ReturnType: ret,
		})
	}

	return overrides, typedefs
}

func constructors(c *decl.Class, abstract bool, ex excludes) []Constructor {
	classWide := ReasonNone

	switch {
	case hasPrivatePureVirtual(c):
		classWide = ReasonPrivatePureVirtual
	case abstract && hasAbstractBase(c):
		classWide = ReasonAbstractBase
	}

	all := c.AllConstructors()
	out := make([]Constructor, 0, len(all))

	for _, ctor := range all {
		reason := classWide
		if reason == ReasonNone {
			reason = constructorReason(c, ctor, ex)
		}

		out = append(out, Constructor{
			Decl:      ctor,
			Signature: signature(ctor),
			Included:  reason == ReasonNone,
			Reason:    reason,
		})
	}

	return out
}

func constructorReason(c *decl.Class, ctor *decl.Function, ex excludes) ExclusionReason {
	switch {
	case ctor.Access != decl.AccessPublic:
		return ReasonNotPublic
	case ctor.Owner != c:
		return ReasonNestedType
	case ctor.Artificial:
		return ReasonArtificial
	}

	for _, a := range ctor.Arguments {
		if slices.Contains(ex.calldef, mangle.Compact(a.Type.Decl)) {
			return ReasonCalldefExclude
		}

		if common.ContainsAny(a.Type.Decl, ex.ctorArgs) {
			return ReasonConstructorArgExclude
		}
	}

	for _, a := range ctor.Arguments {
		if strings.Contains(strings.ToLower(a.Type.Decl), "iterator") {
			return ReasonIteratorArg
		}
	}

	return ReasonNone
}

func methods(c *decl.Class, ex excludes) []Method {
	all := c.AllMethods()
	out := make([]Method, 0, len(all))

	for _, m := range all {
		reason := methodReason(c, m, ex)
		out = append(out, Method{
			Decl:      m,
			Signature: signature(m),
			Included:  reason == ReasonNone,
			Reason:    reason,
		})
	}

	return out
}

func methodReason(c *decl.Class, m *decl.Function, ex excludes) ExclusionReason {
	switch {
	case m.Access != decl.AccessPublic:
		return ReasonNotPublic
	case m.Owner != c:
		return ReasonNestedType
	case slices.Contains(ex.methods, m.Name):
		return ReasonExcludedMethod
	}

	if r := ex.returnReason(m.Returns); r != ReasonNone {
		return r
	}

	return ex.argReason(m.Arguments)
}

// exposedBases returns the names of the non-private bases of c that the
// module exposes.
func exposedBases(c *decl.Class, exposed map[string]struct{}) []string {
	var out []string

	for _, b := range c.Bases {
		if b.Access == decl.AccessPrivate {
			continue
		}

		name := baseName(b)
		if _, ok := exposed[mangle.Compact(name)]; ok {
			out = append(out, name)
		}
	}

	return out
}

func baseName(b decl.Base) string {
	if b.Class != nil {
		return b.Class.Name
	}

	name := b.Name
	head := name

	if i := strings.Index(name, "<"); i >= 0 {
		head = name[:i]
	}

	if i := strings.LastIndex(head, "::"); i >= 0 {
		name = name[i+2:]
	}

	return name
}

// callPolicy picks the return value policy of an included method. A
// pointer or reference return with no configured policy is reported.
func callPolicy(tree *feature.Tree, id feature.ID, m *Method, label string, diags *diagnostic.Diagnostics) string {
	var policy, key string

	switch ret := m.Decl.Returns; {
	case ret.IsReference:
		policy, key = tree.ReferenceCallPolicy(id), "reference_call_policy"
	case ret.IsPointer:
		policy, key = tree.PointerCallPolicy(id), "pointer_call_policy"
	default:
		return ""
	}

	if policy == "" {
		diags.AddInfo(diagnostic.CodeNoCallPolicy,
			fmt.Sprintf("no %s set; the binding default return value policy applies", key), label, m.Signature)
	}

	return policy
}

// signature renders a function for plans and diagnostics, e.g.
// "double GetArea() const" or "Square(double)".
func signature(f *decl.Function) string {
	var b strings.Builder

	if f.Static {
		b.WriteString("static ")
	}

	if f.Returns.Decl != "" {
		b.WriteString(f.Returns.Decl)
		b.WriteByte(' ')
	}

	b.WriteString(f.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(f.ArgumentTypes(), ", "))
	b.WriteByte(')')

	if f.Const {
		b.WriteString(" const")
	}

	return b.String()
}
