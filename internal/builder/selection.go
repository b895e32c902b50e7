package builder

import "sort"

// Selection is a node of the canonical selection tree. Leaf selections have
// no children; composite selections carry at least one child once
// normalization succeeds.
type Selection struct {
	Name     string
	Alias    string
	Args     map[string]any
	Children []*Selection
}

func (s *Selection) isLeaf() bool { return len(s.Children) == 0 }

// Fields is the keyed selection shape: caller-chosen key mapped to a marker.
// A key that differs from the marker's field name becomes an alias. Keys are
// emitted in sorted order since Go maps carry no insertion order.
type Fields map[string]any

// selectionGroups preserves encounter order while grouping same-named
// selections for merging.
type selectionGroups struct {
	groups []*Selection
	index  map[string]int
}

func newSelectionGroups() *selectionGroups {
	return &selectionGroups{index: make(map[string]int)}
}

func (g *selectionGroups) add(sel *Selection) {
	idx, exists := g.index[sel.Name]
	if !exists {
		g.index[sel.Name] = len(g.groups)
		g.groups = append(g.groups, sel)
		return
	}
	// Merge: first occurrence's args win, children concatenate in encounter
	// order, identical leaf children collapse by (name, alias).
	first := g.groups[idx]
	merged := &Selection{
		Name:     first.Name,
		Alias:    first.Alias,
		Args:     first.Args,
		Children: dedupeLeaves(append(append([]*Selection(nil), first.Children...), sel.Children...)),
	}
	g.groups[idx] = merged
}

func (g *selectionGroups) ordered() []*Selection { return g.groups }

func dedupeLeaves(children []*Selection) []*Selection {
	type key struct{ name, alias string }
	seen := make(map[key]bool, len(children))
	out := children[:0]
	for _, c := range children {
		if c.isLeaf() && len(c.Args) == 0 {
			k := key{c.Name, c.Alias}
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		out = append(out, c)
	}
	return out
}

// normalize converts the raw output of a selection function into the
// canonical selection list. Accepted shapes: a []any list of markers, a
// Fields map, or a single marker. Failures are recorded on the context.
func (c *buildContext) normalize(raw any) []*Selection {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		groups := newSelectionGroups()
		for _, entry := range v {
			for _, sel := range c.toSelections(entry) {
				groups.add(sel)
			}
		}
		return groups.ordered()
	case Fields:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []*Selection
		for _, k := range keys {
			sels := c.toSelections(v[k])
			if len(sels) != 1 {
				c.fail(&InvalidSelectionError{Value: v[k]})
				continue
			}
			sel := sels[0]
			if k != sel.Name {
				aliased := *sel
				aliased.Alias = k
				sel = &aliased
			}
			out = append(out, sel)
		}
		return out
	default:
		return c.normalize([]any{raw})
	}
}

// toSelections converts one raw entry into selections. A ScalarSet expands
// to one selection per immediate leaf field.
func (c *buildContext) toSelections(entry any) []*Selection {
	switch v := entry.(type) {
	case *Selection:
		if v == nil {
			return nil
		}
		return []*Selection{v}
	case *Accessor:
		if v == nil {
			return nil
		}
		if sel := v.selection(); sel != nil {
			return []*Selection{sel}
		}
		return nil
	case *ScalarSet:
		if v == nil {
			return nil
		}
		return v.selections()
	default:
		c.fail(&InvalidSelectionError{Value: entry})
		return nil
	}
}
