package app

import (
	"fmt"
	"path"
	"strings"

	"picmerge/internal/domain"
)

// ExistsFunc reports whether a destination-relative path is already present
// on disk.
type ExistsFunc func(rel string) bool

// Resolve maps a candidate destination-relative path to its final path under
// the given collision policy. claimed holds the paths already taken by
// earlier entries of the same plan; the caller adds every non-skip result to
// it so entries of one run cannot collide with each other.
//
// Under the rename policy the numeric disambiguator grows until a free name
// is found; for any finite claimed/existing set this terminates.
func Resolve(candidate string, claimed map[string]bool, exists ExistsFunc, policy domain.CollisionPolicy) (final string, skip bool) {
	taken := claimed[candidate] || exists(candidate)
	if !taken {
		return candidate, false
	}

	switch policy {
	case domain.CollisionSkip:
		return candidate, true
	case domain.CollisionOverwrite:
		return candidate, false
	}

	for n := 1; ; n++ {
		renamed := numbered(candidate, n)
		if !claimed[renamed] && !exists(renamed) {
			return renamed, false
		}
	}
}

// numbered inserts a numeric disambiguator before the extension, keeping any
// directory part intact: "pics/a.png" -> "pics/a (1).png".
func numbered(rel string, n int) string {
	dir := path.Dir(rel)
	base := path.Base(rel)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := fmt.Sprintf("%s (%d)%s", stem, n, ext)
	if dir == "." {
		return name
	}
	return path.Join(dir, name)
}
