package blogservice

// List aggregation helpers. All of them are pure functions over an already
// materialized blog list: no I/O and no mutation of the input. The selection
// helpers scan left to right and replace the running best only on a strictly
// greater value, so among ties the earliest occurrence wins. On an empty list
// they report ok == false and callers must check it.

// FavoriteView is the reduced view returned by FavoriteBlog.
type FavoriteView struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorBlogCount pairs an author with the number of blogs they wrote.
type AuthorBlogCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikeCount pairs an author with their summed likes.
type AuthorLikeCount struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Stats is the aggregate view served by the stats endpoint.
type Stats struct {
	Blogs      int              `json:"blogs"`
	TotalLikes int              `json:"total_likes"`
	Favorite   *FavoriteView    `json:"favorite,omitempty"`
	MostBlogs  *AuthorBlogCount `json:"most_blogs,omitempty"`
	MostLikes  *AuthorLikeCount `json:"most_likes,omitempty"`
}

// Dummy returns 1 for any list. Kept for interface parity with the other
// helpers.
func Dummy(blogs []Blog) int {
	return 1
}

// TotalLikes sums the likes over all blogs. An empty list yields 0.
func TotalLikes(blogs []Blog) int {
	total := 0
	for _, blog := range blogs {
		total += blog.Likes
	}
	return total
}

// FavoriteBlog returns the reduced view of the blog with the most likes.
func FavoriteBlog(blogs []Blog) (FavoriteView, bool) {
	if len(blogs) == 0 {
		return FavoriteView{}, false
	}

	best := blogs[0]
	for _, blog := range blogs[1:] {
		if blog.Likes > best.Likes {
			best = blog
		}
	}

	return FavoriteView{Title: best.Title, Author: best.Author, Likes: best.Likes}, true
}

// MostBlogs returns the author with the most blogs. Authors are grouped by
// exact string equality and scanned in first-appearance order.
func MostBlogs(blogs []Blog) (AuthorBlogCount, bool) {
	if len(blogs) == 0 {
		return AuthorBlogCount{}, false
	}

	counts := make(map[string]int)
	var order []string
	for _, blog := range blogs {
		if _, seen := counts[blog.Author]; !seen {
			order = append(order, blog.Author)
		}
		counts[blog.Author]++
	}

	best := AuthorBlogCount{Author: order[0], Blogs: counts[order[0]]}
	for _, author := range order[1:] {
		if counts[author] > best.Blogs {
			best = AuthorBlogCount{Author: author, Blogs: counts[author]}
		}
	}

	return best, true
}

// MostLikes returns the author whose blogs sum to the most likes, with the
// same grouping and tie-break rules as MostBlogs.
func MostLikes(blogs []Blog) (AuthorLikeCount, bool) {
	if len(blogs) == 0 {
		return AuthorLikeCount{}, false
	}

	likes := make(map[string]int)
	var order []string
	for _, blog := range blogs {
		if _, seen := likes[blog.Author]; !seen {
			order = append(order, blog.Author)
		}
		likes[blog.Author] += blog.Likes
	}

	best := AuthorLikeCount{Author: order[0], Likes: likes[order[0]]}
	for _, author := range order[1:] {
		if likes[author] > best.Likes {
			best = AuthorLikeCount{Author: author, Likes: likes[author]}
		}
	}

	return best, true
}
