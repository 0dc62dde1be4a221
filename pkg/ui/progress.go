package ui

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// StatusTracker accumulates run totals for the completion summary. Comment
// counts arrive from concurrent fetch goroutines, so the counters are
// atomic.
type StatusTracker struct {
	startTime time.Time
	posts     atomic.Int64
	comments  atomic.Int64
	abandoned atomic.Int64
}

// NewStatusTracker creates a tracker with the clock already running.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{startTime: time.Now()}
}

// AddPost records one discovered post.
func (st *StatusTracker) AddPost() {
	st.posts.Add(1)
}

// AddComments records n fetched comments.
func (st *StatusTracker) AddComments(n int) {
	st.comments.Add(int64(n))
}

// AddAbandoned records one post whose comment fetch failed every attempt.
func (st *StatusTracker) AddAbandoned() {
	st.abandoned.Add(1)
}

// Posts returns the number of discovered posts.
func (st *StatusTracker) Posts() int {
	return int(st.posts.Load())
}

// Comments returns the number of fetched comments.
func (st *StatusTracker) Comments() int {
	return int(st.comments.Load())
}

// Abandoned returns the number of posts left without comments.
func (st *StatusTracker) Abandoned() int {
	return int(st.abandoned.Load())
}

// Elapsed returns the time since tracking started.
func (st *StatusTracker) Elapsed() time.Duration {
	return time.Since(st.startTime)
}

// PrintSummary prints the completion summary to stderr.
func (st *StatusTracker) PrintSummary(outputPath string) {
	fmt.Fprintf(os.Stderr, "\n%s %d posts, %d comments in %s\n",
		Green("[COMPLETE]"),
		st.Posts(),
		st.Comments(),
		st.Elapsed().Round(time.Millisecond))

	if n := st.Abandoned(); n > 0 {
		fmt.Fprintf(os.Stderr, "%s %d post(s) kept without comments after failed fetches\n",
			Yellow("[PARTIAL]"), n)
	}

	PrintInfo("Output", outputPath)
}
