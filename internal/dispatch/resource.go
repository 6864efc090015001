package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ClasspathEnv carries the ordered classpath roots into the isolated
// process, joined with the platform list separator. Order is
// significant: the first root containing a resource wins.
const ClasspathEnv = "DAFFODIL_COMPILE_PATH"

// A Resolver locates absolute resource paths on an ordered set of
// classpath roots.
type Resolver struct {
	roots []string
}

// NewResolver returns a resolver over the given roots, in order.
func NewResolver(roots []string) *Resolver {
	return &Resolver{roots: roots}
}

// ResolverFromEnv builds a resolver from the ClasspathEnv variable.
func ResolverFromEnv() *Resolver {
	var roots []string
	for _, root := range filepath.SplitList(os.Getenv(ClasspathEnv)) {
		if root != "" {
			roots = append(roots, root)
		}
	}
	return NewResolver(roots)
}

// Resolve maps an absolute resource path ("/a/b.xsd") to the file
// backing it under the first classpath root that contains it.
func (r *Resolver) Resolve(resourcePath string) (string, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(resourcePath, "/"))
	for _, root := range r.roots {
		path := filepath.Join(root, rel)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("schema resource %s not found on classpath", resourcePath)
}
