// Package stats provides pure aggregation helpers over blog collections.
// Nothing here does I/O — functions take a slice and return a value, which
// keeps them trivially testable and usable from any layer.
package stats

import (
	"errors"

	"github.com/sakif/bloglist/internal/model"
)

// ErrNoBlogs is returned by selection helpers when called with an empty
// slice. There is no meaningful "favorite of nothing", so the caller gets an
// explicit error instead of a zero-value blog.
var ErrNoBlogs = errors.New("stats: no blogs")

// TotalLikes returns the sum of likes across all blogs. An empty (or nil)
// slice sums to 0.
func TotalLikes(blogs []model.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes. When several blogs tie
// for the maximum, the first one in slice order wins (the comparison is
// strictly greater-than, so later ties never displace an earlier winner).
//
// Returns ErrNoBlogs for an empty slice.
func FavoriteBlog(blogs []model.Blog) (model.Blog, error) {
	if len(blogs) == 0 {
		return model.Blog{}, ErrNoBlogs
	}

	best := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > best.Likes {
			best = b
		}
	}
	return best, nil
}
