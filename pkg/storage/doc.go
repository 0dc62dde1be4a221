// Package storage writes scrape results to disk.
//
// The result of a run is a single JSON array of posts, two-space indented.
// File writes are atomic: the document lands in a temporary file next to the
// destination and is renamed into place, so readers never observe a
// truncated result and a crashed run keeps the previous output intact.
//
// Usage:
//
//	writer := storage.NewWriter("output.json")
//	if err := writer.Write(posts); err != nil {
//	    log.Error("failed to write results")
//	}
//
// The special path "-" bypasses the file machinery and streams the document
// to standard output, for piping into jq and friends.
package storage
