package reddit

import (
	"context"
	"strings"

	errs "redscraper/pkg/errors"
	"redscraper/pkg/models"
	"redscraper/pkg/pagination"
	"redscraper/pkg/surface"
)

// PostParser returns the parse function for one post record on the search
// results page. Failures that only concern the record (missing id, missing
// child elements, malformed timestamp) come back as parse errors so the
// paginator can skip the record and keep going.
func PostParser() pagination.ParseFunc[*models.Post] {
	return func(ctx context.Context, surf surface.Surface, h surface.Handle) (*models.Post, error) {
		rawID, err := surf.Attribute(ctx, h, "id")
		if err != nil {
			return nil, err
		}
		id := strings.TrimPrefix(rawID, PostIDPrefix)
		if id == "" {
			return nil, errs.NewParseError("post record has no id")
		}

		subreddit, err := requiredChildText(ctx, surf, h, PostSubredditSelector, "subreddit")
		if err != nil {
			return nil, err
		}

		title, err := requiredChildText(ctx, surf, h, PostTitleSelector, "title")
		if err != nil {
			return nil, err
		}

		createdAt, err := hoverTimestamp(ctx, surf, h, PostCreatedAtSelector)
		if err != nil {
			return nil, err
		}

		return &models.Post{
			ID:        id,
			Subreddit: subreddit,
			Title:     title,
			CreatedAt: createdAt,
			Comments:  []models.Comment{},
		}, nil
	}
}

// CommentParser returns the parse function for one comment record on a post
// page. A comment with no visible body keeps an empty text, not an error.
func CommentParser() pagination.ParseFunc[models.Comment] {
	return func(ctx context.Context, surf surface.Surface, h surface.Handle) (models.Comment, error) {
		rawID, err := surf.Attribute(ctx, h, "id")
		if err != nil {
			return models.Comment{}, err
		}
		id := strings.TrimPrefix(rawID, CommentIDPrefix)
		if id == "" {
			return models.Comment{}, errs.NewParseError("comment record has no id")
		}

		text := ""
		child, err := surf.QueryOne(ctx, h, CommentTextSelector)
		if err != nil {
			return models.Comment{}, err
		}
		if child != nil {
			text, err = surf.Text(ctx, child)
			if err != nil {
				return models.Comment{}, err
			}
		}

		createdAt, err := hoverTimestamp(ctx, surf, h, CommentCreatedAtSelector)
		if err != nil {
			return models.Comment{}, err
		}

		return models.Comment{
			ID:        id,
			Text:      text,
			CreatedAt: createdAt,
		}, nil
	}
}

// requiredChildText reads the trimmed text of a child element that the
// record contract requires. Absence is a parse error.
func requiredChildText(ctx context.Context, surf surface.Surface, scope surface.Handle, sel, field string) (string, error) {
	child, err := surf.QueryOne(ctx, scope, sel)
	if err != nil {
		return "", err
	}
	if child == nil {
		return "", errs.NewParseError("record missing %s", field)
	}

	text, err := surf.Text(ctx, child)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// hoverTimestamp extracts a record's full-precision timestamp: hover the age
// indicator, wait for the tooltip, read and normalize its text. A tooltip
// that never appears is a parse error scoped to this record; the page itself
// is still healthy.
func hoverTimestamp(ctx context.Context, surf surface.Surface, scope surface.Handle, sel string) (string, error) {
	age, err := surf.QueryOne(ctx, scope, sel)
	if err != nil {
		return "", err
	}
	if age == nil {
		return "", errs.NewParseError("record missing age indicator")
	}

	if err := surf.Hover(ctx, age); err != nil {
		return "", err
	}

	if err := surf.WaitFor(ctx, TooltipSelector); err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", errs.NewParseError("timestamp tooltip did not appear: %v", err)
	}

	tip, err := surf.QueryOne(ctx, nil, TooltipSelector)
	if err != nil {
		return "", err
	}
	if tip == nil {
		return "", errs.NewParseError("timestamp tooltip did not appear")
	}

	raw, err := surf.Text(ctx, tip)
	if err != nil {
		return "", err
	}

	t, err := NormalizeTimestamp(raw)
	if err != nil {
		return "", err
	}
	return t.Format(TimeLayout), nil
}
