package system

import (
	"context"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Globber discovers files under root matching pattern, excluding any path
// that also matches ignore. Both patterns are doublestar (`**`) globs
// relative to root, mirroring openapi-lsp.discoverRoots.pattern/ignore.
type Globber interface {
	Glob(ctx context.Context, fsys VirtualFS, root, pattern, ignore string) ([]string, error)
}

// DefaultGlobber walks a VirtualFS with github.com/bmatcuk/doublestar, the
// same library used for pattern discovery in OpenAPI bundling elsewhere in
// this module's lineage.
type DefaultGlobber struct{}

var _ Globber = DefaultGlobber{}

func (DefaultGlobber) Glob(ctx context.Context, fsys VirtualFS, root, pattern, ignore string) ([]string, error) {
	var matches []string

	sub := fsys
	walkRoot := "."
	if root != "" && root != "." {
		walkRoot = root
	}

	err := fs.WalkDir(sub, walkRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel := p
		if walkRoot != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(p, walkRoot), "/")
		}

		ok, err := doublestar.Match(pattern, rel)
		if err != nil || !ok {
			return nil //nolint:nilerr // a malformed user pattern simply matches nothing
		}
		if ignore != "" {
			if ignored, _ := doublestar.Match(ignore, rel); ignored {
				return nil
			}
		}
		matches = append(matches, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}
