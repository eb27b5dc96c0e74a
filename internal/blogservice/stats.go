package blogservice

type Stats struct {
	Blogs        int          `json:"blogs"`
	TotalLikes   int          `json:"total_likes"`
	FavoriteBlog *Blog        `json:"favorite_blog"`
	MostBlogs    *AuthorCount `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}

type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the likes of blogs. It is 0 for an empty slice.
func TotalLikes(blogs []Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, the earliest one on a tie.
func FavoriteBlog(blogs []Blog) *Blog {
	if len(blogs) == 0 {
		return nil
	}

	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}

	return &fav
}

// MostBlogs returns the author with the most blogs. Blogs without an author are
// ignored; on a tie the author seen first wins.
func MostBlogs(blogs []Blog) *AuthorCount {
	authors, counts := tally(blogs, func(Blog) int { return 1 })
	if len(authors) == 0 {
		return nil
	}

	best := authors[0]
	for _, a := range authors[1:] {
		if counts[a] > counts[best] {
			best = a
		}
	}

	return &AuthorCount{Author: best, Blogs: counts[best]}
}

// MostLikes returns the author whose blogs have the most likes in total, with
// the same tie and empty author rules as MostBlogs.
func MostLikes(blogs []Blog) *AuthorLikes {
	authors, likes := tally(blogs, func(b Blog) int { return b.Likes })
	if len(authors) == 0 {
		return nil
	}

	best := authors[0]
	for _, a := range authors[1:] {
		if likes[a] > likes[best] {
			best = a
		}
	}

	return &AuthorLikes{Author: best, Likes: likes[best]}
}

// tally sums weight per author, returning the authors in order of first appearance.
func tally(blogs []Blog, weight func(Blog) int) ([]string, map[string]int) {
	var authors []string
	sums := make(map[string]int)

	for _, b := range blogs {
		if b.Author == "" {
			continue
		}
		if _, seen := sums[b.Author]; !seen {
			authors = append(authors, b.Author)
		}
		sums[b.Author] += weight(b)
	}

	return authors, sums
}
