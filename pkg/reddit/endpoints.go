package reddit

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the site root used when no override is configured.
const DefaultBaseURL = "https://reddit.com"

// SearchURL builds the search results URL for a query string. The query is
// escaped so multi-word queries survive the trip.
func SearchURL(base, query string) string {
	return fmt.Sprintf("%s/search?q=%s", strings.TrimRight(base, "/"), url.QueryEscape(query))
}

// CommentsURL builds the comment page URL for a post. subreddit comes from
// the listing record and already carries its "r/" prefix.
func CommentsURL(base, subreddit, id string) string {
	return fmt.Sprintf("%s/%s/comments/%s", strings.TrimRight(base, "/"), subreddit, id)
}
