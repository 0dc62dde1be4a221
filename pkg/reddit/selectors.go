package reddit

// DOM selectors for the pieces of a search results page and a post's comment
// page. Reddit's class names are build artifacts and change when the site
// ships new markup; when extraction starts coming back empty, update these
// first.
const (
	// PostSelector matches one post record on the search results page.
	PostSelector = ".Post"

	// Child selectors scoped to a single post record.
	PostSubredditSelector = "._3ryJoIoycVkA88fy40qNJc"
	PostTitleSelector     = ".SQnoC3ObvgnGjWt90zD9Z"
	PostCreatedAtSelector = "._2VF2J19pUIMSLJFky-7PEI"

	// CommentSelector matches one comment record on a post page.
	CommentSelector = "._3sf33-9rVAO_v4y0pIW_CH"

	// Child selectors scoped to a single comment record.
	CommentTextSelector      = "._1qeIAgB0cPwnLhDF9XSiJM"
	CommentCreatedAtSelector = "._3yx4Dn0W3Yunucf5sVJeFU"

	// TooltipSelector matches the full-precision timestamp tooltip that
	// appears after hovering an age indicator.
	TooltipSelector = "._2J8R1FH2EjGMkQjedwccc"
)

// Attribute prefixes on record ids. A post record's id attribute looks like
// "t3_abc123", a comment's like "t1_def456".
const (
	PostIDPrefix    = "t3_"
	CommentIDPrefix = "t1_"
)
