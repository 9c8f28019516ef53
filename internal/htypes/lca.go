package htypes

import "fmt"

// BuildLCA precomputes a binary-lifting ancestor table over the inheritance
// tree rooted at Object, giving Conforms/CommonSupertype O(log n) queries
// instead of walking parent chains on every call. Must run after every
// user type's parent has been resolved (pass 2, after cycle detection has
// confirmed the parent graph is acyclic) and before pass 3 begins.
func (c *Context) BuildLCA() error {
	c.index = map[string]int{}
	c.names = nil
	for _, name := range c.order {
		c.index[name] = len(c.names)
		c.names = append(c.names, name)
	}
	n := len(c.names)

	maxLog := 1
	for (1 << maxLog) < n+1 {
		maxLog++
	}

	c.depth = make([]int, n)
	c.up = make([][]int, maxLog)
	for k := range c.up {
		c.up[k] = make([]int, n)
		for i := range c.up[k] {
			c.up[k][i] = -1
		}
	}

	rootIdx, ok := c.index["Object"]
	if !ok {
		return fmt.Errorf("htypes: Object is not registered")
	}

	visited := make([]bool, n)
	var dfs func(node int, d int)
	dfs = func(node int, d int) {
		visited[node] = true
		c.depth[node] = d
		for _, childName := range c.children[c.names[node]] {
			childIdx := c.index[childName]
			c.up[0][childIdx] = node
			dfs(childIdx, d+1)
		}
	}
	dfs(rootIdx, 0)

	// built-in primitives (Number/String/Boolean) are registered but have
	// no parent edge into Object; treat each as its own isolated depth-0
	// root so conforms/common-supertype queries involving them degrade to
	// plain equality rather than an out-of-bounds ancestor lookup.
	for i, visited := range visited {
		if !visited {
			c.depth[i] = 0
		}
	}

	for k := 1; k < maxLog; k++ {
		for v := 0; v < n; v++ {
			if c.up[k-1][v] == -1 {
				c.up[k][v] = -1
			} else {
				c.up[k][v] = c.up[k-1][c.up[k-1][v]]
			}
		}
	}

	return nil
}

// ancestorAt returns the index of v's ancestor exactly dist steps up, or -1
// if dist exceeds v's depth.
func (c *Context) ancestorAt(v, dist int) int {
	for k := 0; k < len(c.up) && v != -1; k++ {
		if dist&(1<<k) != 0 {
			v = c.up[k][v]
		}
	}
	return v
}

// lcaIndex returns the index of the least common ancestor of u and v in the
// inheritance tree (standard binary-lifting LCA).
func (c *Context) lcaIndex(u, v int) int {
	if c.depth[u] < c.depth[v] {
		u, v = v, u
	}
	u = c.ancestorAt(u, c.depth[u]-c.depth[v])
	if u == v {
		return u
	}
	for k := len(c.up) - 1; k >= 0; k-- {
		if c.up[k][u] != c.up[k][v] {
			u, v = c.up[k][u], c.up[k][v]
		}
	}
	return c.up[0][u]
}

// LCA returns the least common ancestor type of two user/Object types. Only
// meaningful once BuildLCA has run and both names are registered
// non-builtin-primitive types.
func (c *Context) LCA(a, b string) (string, bool) {
	ai, ok := c.index[a]
	if !ok {
		return "", false
	}
	bi, ok := c.index[b]
	if !ok {
		return "", false
	}
	if c.up[0][ai] == -1 && ai != c.index["Object"] {
		// a is an isolated primitive root; only conforms to itself.
		if ai == bi {
			return a, true
		}
		return "Object", c.up[0][bi] != -1 || bi == c.index["Object"]
	}
	if c.up[0][bi] == -1 && bi != c.index["Object"] {
		if ai == bi {
			return a, true
		}
		return "Object", c.up[0][ai] != -1 || ai == c.index["Object"]
	}
	idx := c.lcaIndex(ai, bi)
	return c.names[idx], true
}

// Conforms reports whether a is usable where b is expected: a is b, or a
// subtype of b. Primitive types only conform to themselves; None conforms
// to every type and every type conforms to None;
// iterable types are covariant in their element type; user/Object types
// conform via lca(a, b) == b.
func (c *Context) Conforms(a, b Type) bool {
	if a.IsNone() || b.IsNone() {
		// a subtree that already failed to type should not cascade
		// secondary mismatches — treat None as conforming to anything and
		// anything as conforming to None.
		return true
	}
	if a.kind == KindIterable && b.kind == KindIterable {
		return c.Conforms(a.Elem(), b.Elem())
	}
	if a.IsBuiltinPrimitive() || b.IsBuiltinPrimitive() {
		return a.Equal(b)
	}
	if a.kind != KindUser && a.kind != KindObject {
		return a.Equal(b)
	}
	if b.kind != KindUser && b.kind != KindObject {
		return a.Equal(b)
	}
	lca, ok := c.LCA(a.Name(), b.Name())
	if !ok {
		return false
	}
	return lca == b.Name()
}

// CommonSupertype returns the narrowest type both a and b conform to:
// lca(a, b) for user/Object types, element-wise recursion for iterables,
// a itself if a.Equal(b), or None if no common supertype exists (distinct
// primitives, or a primitive paired with a user type).
func (c *Context) CommonSupertype(a, b Type) Type {
	if a.Equal(b) {
		return a
	}
	if a.kind == KindIterable && b.kind == KindIterable {
		return Iterable(c.CommonSupertype(a.Elem(), b.Elem()))
	}
	if a.IsBuiltinPrimitive() || b.IsBuiltinPrimitive() {
		return None()
	}
	if (a.kind == KindUser || a.kind == KindObject) && (b.kind == KindUser || b.kind == KindObject) {
		lca, ok := c.LCA(a.Name(), b.Name())
		if !ok {
			return None()
		}
		if lca == "Object" {
			return Object()
		}
		return User(lca)
	}
	return None()
}
