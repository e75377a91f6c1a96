// Package pathname implements validation and decomposition of the folder
// tree's path grammar: "/" or "/c1/c2/.../cn/" where each ci is 1..255
// lowercase ASCII letters.
//
// This is deliberately a thin, dependency-free scanner over a restricted
// alphabet rather than a general path library: the grammar is fixed, fully
// delimited, and small enough that a byte-level scan is both simpler and
// cheaper than pulling in a parser.
package pathname

import "strings"

// MaxComponentLen is the longest a single path component may be.
const MaxComponentLen = 255

// MaxPathLen is the longest a whole path string may be.
const MaxPathLen = 4095

// Separator is the component delimiter, also used to open and close every
// valid path.
const Separator = '/'

// Root is the sole path denoting the tree's root.
const Root = "/"

// Valid reports whether p conforms to the path grammar: non-empty, begins
// and ends with '/', has 0 or more '/'-delimited components each 1..255
// lowercase ASCII letters, and is at most MaxPathLen bytes overall.
func Valid(p string) bool {
	if len(p) == 0 || len(p) > MaxPathLen {
		return false
	}
	if p[0] != Separator || p[len(p)-1] != Separator {
		return false
	}
	if p == Root {
		return true
	}

	start := 1
	for i := 1; i < len(p); i++ {
		if p[i] != Separator {
			continue
		}
		if !validComponent(p[start:i]) {
			return false
		}
		start = i + 1
	}
	return true
}

func validComponent(c string) bool {
	if len(c) == 0 || len(c) > MaxComponentLen {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'a' || c[i] > 'z' {
			return false
		}
	}
	return true
}

// Split returns the first component of p and the remaining subpath
// (including its leading '/'). If p is Root, ok is false: there is nothing
// left to descend into. p must already be valid.
//
// Split("/a/b/c/") -> ("a", "/b/c/", true)
// Split("/a/")      -> ("a", "/", true)
// Split("/")        -> ("", "", false)
func Split(p string) (first string, rest string, ok bool) {
	if p == Root {
		return "", "", false
	}
	end := strings.IndexByte(p[1:], Separator) + 1
	return p[1:end], p[end:], true
}

// SplitParent splits p into its parent path and its final component. It
// returns ok=false for the root, which has no parent.
//
// SplitParent("/a/b/c/") -> ("/a/b/", "c", true)
// SplitParent("/a/")      -> ("/", "a", true)
// SplitParent("/")        -> ("", "", false)
func SplitParent(p string) (parent string, name string, ok bool) {
	if p == Root {
		return "", "", false
	}
	trimmed := p[:len(p)-1]
	idx := strings.LastIndexByte(trimmed, Separator)
	return p[:idx+1], trimmed[idx+1:], true
}

// Components splits a valid non-root path into its ordered list of
// component names. Components(Root) returns an empty, non-nil slice.
func Components(p string) []string {
	if p == Root {
		return []string{}
	}
	trimmed := p[1 : len(p)-1]
	return strings.Split(trimmed, string(Separator))
}

// IsRoot reports whether p is the root path.
func IsRoot(p string) bool {
	return p == Root
}

// IsStrictDescendant reports whether descendant names a node strictly
// below ancestor in the tree, i.e. ancestor is a proper component-aligned
// prefix of descendant. Both paths must already be valid.
func IsStrictDescendant(ancestor, descendant string) bool {
	if len(ancestor) >= len(descendant) {
		return false
	}
	return descendant[:len(ancestor)] == ancestor
}

// LowestCommonAncestor returns the longest common path prefix of a and b,
// aligned to a component boundary (never splitting a component in half).
// Both paths must already be valid.
func LowestCommonAncestor(a, b string) string {
	ac, bc := Components(a), Components(b)
	n := len(ac)
	if len(bc) < n {
		n = len(bc)
	}
	var sb strings.Builder
	sb.WriteByte(Separator)
	for i := 0; i < n; i++ {
		if ac[i] != bc[i] {
			break
		}
		sb.WriteString(ac[i])
		sb.WriteByte(Separator)
	}
	return sb.String()
}

// RelativeTo returns the subpath of descendant relative to ancestor, in a
// form Split/SplitParent can walk further: RelativeTo("/a/", "/a/b/c/")
// returns "/b/c/". ancestor must be a component-aligned prefix of
// descendant (or equal to it, in which case the result is Root).
func RelativeTo(ancestor, descendant string) string {
	if ancestor == descendant {
		return Root
	}
	return descendant[len(ancestor)-1:]
}
