// Package prune decides which local images to delete and deletes them.
//
// Images are grouped by repository key, the tag with its final ":suffix"
// removed. Every untagged image is a candidate, and within each repository
// every image beyond the newest Keep is a candidate.
package prune

import (
	"sort"
	"strings"

	"github.com/schmitthub/imageclean/internal/docker"
)

// RepositoryKey returns the portion of tag before the last ':', or the whole
// tag when it contains no ':'.
func RepositoryKey(tag string) string {
	if idx := strings.LastIndex(tag, ":"); idx != -1 {
		return tag[:idx]
	}
	return tag
}

// Groups maps repository keys to the images tagged under them.
// Keys are kept in first-seen order so iteration is deterministic.
type Groups struct {
	keys   []string
	images map[string][]docker.Image
}

// Keys returns repository keys in first-seen order.
func (g *Groups) Keys() []string {
	return g.keys
}

// Images returns the images grouped under key, in insertion order.
func (g *Groups) Images(key string) []docker.Image {
	return g.images[key]
}

// Len returns the number of repositories.
func (g *Groups) Len() int {
	return len(g.keys)
}

// GroupByRepository partitions images by repository key. An image tagged
// more than once under the same key is added to that group only once; an
// image with no tags joins no group.
func GroupByRepository(images []docker.Image) *Groups {
	g := &Groups{images: make(map[string][]docker.Image)}
	seen := make(map[string]map[string]struct{})

	for _, img := range images {
		for _, tag := range img.Tags {
			key := RepositoryKey(tag)
			members, ok := seen[key]
			if !ok {
				members = make(map[string]struct{})
				seen[key] = members
				g.keys = append(g.keys, key)
			}
			if _, dup := members[img.ID]; dup {
				continue
			}
			members[img.ID] = struct{}{}
			g.images[key] = append(g.images[key], img)
		}
	}
	return g
}

// SelectOverflow returns the images of one repository group that fall beyond
// the newest keep, ordered newest first. The input slice is not modified.
// Equal creation times keep their group order.
func SelectOverflow(group []docker.Image, keep int) []docker.Image {
	keep = max(keep, 0)
	if len(group) <= keep {
		return nil
	}
	sorted := make([]docker.Image, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Created > sorted[j].Created
	})
	return sorted[keep:]
}
