package prune

import (
	"fmt"
	"time"

	"github.com/schmitthub/imageclean/internal/docker"
)

const (
	// idDisplayLen is how much of the raw image ID is shown, digest prefix included.
	idDisplayLen = 20

	untaggedLabel = "UNTAGGED"

	createdLayout = "2006-01-02 15:04:05"
)

// AgeDays returns the whole number of days between created and now,
// rounded down. Images stamped in the future report 0.
func AgeDays(created, now time.Time) int {
	d := now.Sub(created)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// FormatCandidate renders one image as shown in the deletion plan:
// truncated ID, age in days, creation time and first tag.
func FormatCandidate(img docker.Image, now time.Time) string {
	id := img.ID
	if len(id) > idDisplayLen {
		id = id[:idDisplayLen]
	}
	tag := img.FirstTag()
	if tag == "" {
		tag = untaggedLabel
	}
	created := img.CreatedAt()
	return fmt.Sprintf("%s %6d days (%s) %s", id, AgeDays(created, now), created.Format(createdLayout), tag)
}

// ConfirmMessage is the yes/no question asked before deleting n images.
func ConfirmMessage(n int) string {
	return fmt.Sprintf("Delete these %d images? (y/n) ", n)
}

// NothingToDeleteMessage explains an empty plan.
func NothingToDeleteMessage(keep int) string {
	return fmt.Sprintf("Nothing to delete: no repository contains more than %d images", keep)
}

// Row is the machine-readable form of a candidate.
type Row struct {
	ID      string `json:"id"`
	Created string `json:"created"`
	AgeDays int    `json:"age_days"`
	Tag     string `json:"tag"`
	Size    int64  `json:"size"`
}

// Rows converts the plan to rows for --json output.
func (p *Plan) Rows(now time.Time) []Row {
	rows := make([]Row, 0, len(p.Candidates))
	for _, img := range p.Candidates {
		tag := img.FirstTag()
		if tag == "" {
			tag = untaggedLabel
		}
		rows = append(rows, Row{
			ID:      img.ID,
			Created: img.CreatedAt().Format(time.RFC3339),
			AgeDays: AgeDays(img.CreatedAt(), now),
			Tag:     tag,
			Size:    img.Size,
		})
	}
	return rows
}
