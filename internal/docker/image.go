package docker

import (
	"time"

	"github.com/moby/moby/api/types/image"
)

// untaggedPlaceholder is what older daemons report for an image with no tags.
const untaggedPlaceholder = "<none>:<none>"

// Image is a read-only snapshot of one locally present image.
type Image struct {
	ID      string
	Created int64 // seconds since epoch
	Tags    []string
	Size    int64
}

// Untagged reports whether the image carries no repository tags.
func (i Image) Untagged() bool {
	return len(i.Tags) == 0
}

// CreatedAt returns the creation time in the local zone.
func (i Image) CreatedAt() time.Time {
	return time.Unix(i.Created, 0)
}

// FirstTag returns the first tag, or "" for untagged images.
func (i Image) FirstTag() string {
	if len(i.Tags) == 0 {
		return ""
	}
	return i.Tags[0]
}

func imageFromSummary(s image.Summary) Image {
	tags := make([]string, 0, len(s.RepoTags))
	for _, t := range s.RepoTags {
		if t == "" || t == untaggedPlaceholder {
			continue
		}
		tags = append(tags, t)
	}
	return Image{
		ID:      s.ID,
		Created: s.Created,
		Tags:    tags,
		Size:    s.Size,
	}
}
