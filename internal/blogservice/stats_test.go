package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var listWithManyBlogs = []Blog{
	{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
	{Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html", Likes: 5},
	{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: 12},
	{Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/05/05/TestDefinitions.htmll", Likes: 10},
	{Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/03/03/TDD-Harms-Architecture.html", Likes: 0},
	{Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html", Likes: 2},
}

func TestTotalLikes(t *testing.T) {
	testCases := []struct {
		name  string
		blogs []Blog
		want  int
	}{
		{name: "empty list", blogs: nil, want: 0},
		{name: "one blog", blogs: listWithManyBlogs[:1], want: 7},
		{name: "many blogs", blogs: listWithManyBlogs, want: 36},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalLikes(tc.blogs))
		})
	}
}

func TestFavoriteBlog(t *testing.T) {
	assert.Nil(t, FavoriteBlog(nil))
	assert.Equal(t, "Canonical string reduction", FavoriteBlog(listWithManyBlogs).Title)

	tied := []Blog{{Title: "first", Likes: 3}, {Title: "second", Likes: 3}}
	assert.Equal(t, "first", FavoriteBlog(tied).Title)
}

func TestMostBlogs(t *testing.T) {
	assert.Nil(t, MostBlogs(nil))
	assert.Nil(t, MostBlogs([]Blog{{Title: "anonymous"}}))
	assert.Equal(t, &AuthorCount{Author: "Robert C. Martin", Blogs: 3}, MostBlogs(listWithManyBlogs))

	tied := []Blog{{Author: "a"}, {Author: "b"}, {Author: "b"}, {Author: "a"}}
	assert.Equal(t, &AuthorCount{Author: "a", Blogs: 2}, MostBlogs(tied))
}

func TestMostLikes(t *testing.T) {
	assert.Nil(t, MostLikes(nil))
	assert.Equal(t, &AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}, MostLikes(listWithManyBlogs))
}
