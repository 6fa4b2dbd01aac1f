package plan

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/feature"
	"wrapper-generator/internal/mangle"
)

// Options tune planning.
type Options struct {
	// Workers bounds how many classes are planned at once; zero means GOMAXPROCS.
	Workers int
}

// Build plans every bound feature of tree. Resolution must be complete.
// Class instantiations are planned concurrently; each writes only its own
// slot and diagnostics, merged afterwards in tree order.
func Build(ctx context.Context, tree *feature.Tree, opts Options, diags *diagnostic.Diagnostics) (*Plan, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Plan{Package: tree.Root().Name}

	var (
		jobs    []classJob
		owners  []int
		exposed []map[string]struct{}
	)

	for mi, mod := range tree.Modules() {
		mp := &ModulePlan{Name: mod.Name, Feature: mod.ID}
		set := map[string]struct{}{}

		for _, n := range tree.Children(mod.ID, feature.KindClass) {
			for _, full := range tree.FullNames(n.ID) {
				name := mangle.Compact(full)
				if _, ok := set[name]; !ok {
					set[name] = struct{}{}
					mp.Exposed = append(mp.Exposed, name)
				}
			}

			for slot, d := range n.Decls {
				if d == nil {
					continue
				}

				c, ok := d.(*decl.Class)
				if !ok {
					return nil, fmt.Errorf("failed to plan %s: bound to %T, want a class", tree.Label(n.ID), d)
				}

				jobs = append(jobs, classJob{node: n, slot: slot, class: c})
				owners = append(owners, mi)
			}
		}

		var err error
		if mp.FreeFunctions, err = planFunctions(tree, mod); err != nil {
			return nil, err
		}

		if mp.Variables, err = planVariables(tree, mod); err != nil {
			return nil, err
		}

		exposed = append(exposed, set)
		p.Modules = append(p.Modules, mp)
	}

	classes := make([]*ClassPlan, len(jobs))
	jobDiags := make([]diagnostic.Diagnostics, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			classes[i] = planClass(tree, job, exposed[owners[i]], &jobDiags[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to plan classes: %w", err)
	}

	for i := range jobs {
		diags.Merge(jobDiags[i])

		mp := p.Modules[owners[i]]
		mp.Classes = append(mp.Classes, classes[i])
	}

	for _, mp := range p.Modules {
		ordered, err := registrationOrder(mp.Classes)
		if err != nil {
			return nil, fmt.Errorf("failed to order classes of module %s: %w", mp.Name, err)
		}

		mp.Classes = ordered
	}

	return p, nil
}

func planFunctions(tree *feature.Tree, mod *feature.Node) ([]*FunctionPlan, error) {
	var out []*FunctionPlan

	for _, n := range tree.Children(mod.ID, feature.KindFreeFunction) {
		ex := excludesFor(tree, n.ID)

		for _, d := range n.Decls {
			if d == nil {
				continue
			}

			f, ok := d.(*decl.Function)
			if !ok {
				return nil, fmt.Errorf("failed to plan %s: bound to %T, want a function", tree.Label(n.ID), d)
			}

			reason := ex.returnReason(f.Returns)
			if reason == ReasonNone {
				reason = ex.argReason(f.Arguments)
			}

			out = append(out, &FunctionPlan{
				Feature:   n.ID,
				Label:     tree.Label(n.ID),
				Decl:      f,
				Signature: signature(f),
				Included:  reason == ReasonNone,
				Reason:    reason,
			})
		}
	}

	return out, nil
}

func planVariables(tree *feature.Tree, mod *feature.Node) ([]*VariablePlan, error) {
	var out []*VariablePlan

	for _, n := range tree.Children(mod.ID, feature.KindVariable) {
		excluded := tree.ExcludedVariables(n.ID)

		for _, d := range n.Decls {
			if d == nil {
				continue
			}

			v, ok := d.(*decl.Variable)
			if !ok {
				return nil, fmt.Errorf("failed to plan %s: bound to %T, want a variable", tree.Label(n.ID), d)
			}

			reason := ReasonNone
			if slices.Contains(excluded, v.Name) {
				reason = ReasonExcludedVariable
			}

			out = append(out, &VariablePlan{
				Feature:  n.ID,
				Label:    tree.Label(n.ID),
				Decl:     v,
				Included: reason == ReasonNone,
				Reason:   reason,
			})
		}
	}

	return out, nil
}

// Class returns the first class plan with the given short name, or nil.
func (m *ModulePlan) Class(shortName string) *ClassPlan {
	for _, c := range m.Classes {
		if c.ShortName == shortName {
			return c
		}
	}

	return nil
}

// Module returns the module plan with the given name, or nil.
func (p *Plan) Module(name string) *ModulePlan {
	for _, m := range p.Modules {
		if m.Name == name {
			return m
		}
	}

	return nil
}
