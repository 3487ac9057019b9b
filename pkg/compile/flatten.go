package compile

// flatten produces the final node sequence by scoped depth-first emission.
//
// At the root, all orphan (non-group) nodes come first, then every root
// group followed immediately by its full descendant subtree. Inside a
// group, non-group children come before child subgroups. Subgroups always
// sort spatially, even though children sort semantically; this keeps
// sibling group blocks in reading order while their contents cluster by
// meaning.
//
// Canvas nesting is shallow in practice, so plain recursion is fine here.
func flatten(d *document, h *hierarchy, s *sorter) []nodeRef {
	out := make([]nodeRef, 0, len(d.nodes))

	orphans := make([]nodeRef, 0)
	rootGroups := make([]nodeRef, 0)
	for _, n := range h.roots {
		if n.IsGroup() {
			rootGroups = append(rootGroups, n)
		} else {
			orphans = append(orphans, n)
		}
	}

	s.sortNodes(orphans, scopeRootOrphans)
	out = append(out, orphans...)

	s.sortNodes(rootGroups, scopeRootGroups)
	for _, g := range rootGroups {
		out = emitGroup(out, g, h, s)
	}

	return out
}

// emitGroup appends the group node and, recursively, its sorted subtree.
func emitGroup(out []nodeRef, g nodeRef, h *hierarchy, s *sorter) []nodeRef {
	out = append(out, g)

	children := make([]nodeRef, 0)
	subgroups := make([]nodeRef, 0)
	for _, m := range h.children[g.id] {
		if m.IsGroup() {
			subgroups = append(subgroups, m)
		} else {
			children = append(children, m)
		}
	}

	s.sortNodes(children, scopeChildren)
	out = append(out, children...)

	s.sortNodes(subgroups, scopeSubgroups)
	for _, sub := range subgroups {
		out = emitGroup(out, sub, h, s)
	}

	return out
}
