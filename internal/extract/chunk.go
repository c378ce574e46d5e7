// Package extract drives bulk data movement: chunked date-range
// extraction from the remote API into the store, and id-cursor bulk
// reads back out of the store for analysis. Date chunking bounds the
// worst-case cost of any single remote query; the id cursor keeps local
// reads fast regardless of how deep the scan already is.
package extract

import "time"

// DateChunk is one bounded sub-range of an extraction window, inclusive
// on both ends.
type DateChunk struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days the chunk covers.
func (c DateChunk) Days() int {
	return int(c.End.Sub(c.Start).Hours()/24) + 1
}

// DateChunks splits [start, end] into windows of the given day span.
// Each window ends days calendar days after it starts (clamped to the
// range end) and the next window begins the following day, so
// concatenating all chunks covers the range exactly once. A span of 7
// over 2024-01-01..2024-01-10 yields [01-01,01-08] and [01-09,01-10].
func DateChunks(start, end time.Time, days int) []DateChunk {
	if days < 1 {
		days = 1
	}
	start = truncateDay(start)
	end = truncateDay(end)

	var chunks []DateChunk
	for cur := start; !cur.After(end); {
		chunkEnd := cur.AddDate(0, 0, days)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		chunks = append(chunks, DateChunk{Start: cur, End: chunkEnd})
		cur = chunkEnd.AddDate(0, 0, 1)
	}
	return chunks
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
