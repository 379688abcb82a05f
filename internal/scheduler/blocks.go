package scheduler

import "github.com/rhyrak/go-timetable/pkg/model"

// Block is a run of adjacent free slot indices.
type Block []int

// Duration sums the member slot durations.
func (b Block) Duration(catalog *Catalog) float64 {
	total := 0.0
	for _, i := range b {
		total += catalog.Duration(i)
	}
	return total
}

// Labels maps the block back to slot labels.
func (b Block) Labels(catalog *Catalog) []string {
	labels := make([]string, len(b))
	for k, i := range b {
		labels[k] = catalog.Label(i)
	}
	return labels
}

// FreeBlocks returns the maximal runs of empty, non-excluded slots of a day in
// catalog order. Occupied and excluded slots both break a run.
func FreeBlocks(day *model.Day, catalog *Catalog, excluded map[string]bool) []Block {
	var blocks []Block
	var current Block
	for i := 0; i < catalog.Len(); i++ {
		if day.IsFree(i) && !excluded[catalog.Label(i)] {
			current = append(current, i)
			continue
		}
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
