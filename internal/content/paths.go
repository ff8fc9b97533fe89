package content

import (
	"path"
	"strings"
)

// DefaultPrefix marks a reference as rooted at the content directory.
const DefaultPrefix = "content/"

// Paths resolves slash-separated content references.
//
// A reference starting with Prefix is absolute and used verbatim. Anything else
// is relative to the directory of the page that references it.
type Paths struct {
	Prefix string
}

// NewPaths returns a Paths using prefix, or DefaultPrefix when prefix is empty.
func NewPaths(prefix string) Paths {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Paths{Prefix: prefix}
}

// IsAbsolute reports whether ref is rooted at the content directory.
func (p Paths) IsAbsolute(ref string) bool {
	return strings.HasPrefix(ref, p.Prefix)
}

// Resolve turns ref into a content path using the directory of currentPath.
func (p Paths) Resolve(ref, currentPath string) string {
	if p.IsAbsolute(ref) {
		return ref
	}
	return Join(PageDir(currentPath), ref)
}

// PageDir returns the directory of a page path. A path whose last segment
// contains a dot is a file; anything else is already a directory.
func PageDir(currentPath string) string {
	if currentPath == "" {
		return ""
	}
	last := currentPath
	if i := strings.LastIndex(currentPath, "/"); i >= 0 {
		last = currentPath[i+1:]
	}
	if !strings.Contains(last, ".") {
		return strings.TrimSuffix(currentPath, "/")
	}
	return Dir(currentPath)
}

// Dir returns everything before the last slash, or "" for a bare name.
func Dir(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Join appends ref to dir and cleans the result. An empty dir leaves ref as is
// apart from cleaning.
func Join(dir, ref string) string {
	if dir == "" {
		return path.Clean(ref)
	}
	return path.Join(dir, ref)
}
