package ast

import "slices"

// ReferencedNames lists the identifiers a tree resolves against the host context:
// call callees and the leftmost object of member chains. Property names and bare
// identifiers in other positions, including call arguments, are excluded since they
// are never looked up.
// The result is sorted and free of duplicates.
func ReferencedNames(n Node) []string {
	seen := map[string]struct{}{}
	var collect func(Node) bool
	collect = func(n Node) bool {
		switch n := n.(type) {
		case *CallExpression:
			if id, ok := n.Callee.(*Identifier); ok {
				seen[id.Name] = struct{}{}
				return false
			}
			Walk(n.Callee, collect)
			return false
		case *MemberExpression:
			if id, ok := n.Object.(*Identifier); ok {
				seen[id.Name] = struct{}{}
			}
		}
		return true
	}
	Walk(n, collect)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
