package blogservice

import (
	"math"
	"strconv"
	"strings"

	"github.com/sushihentaime/bloglist/internal/common"
)

const maxFieldLength = 500

func validateTitle(v *common.Validator, title string) {
	v.Check(v.NotBlank(title), "title", "must be provided")
	v.Check(len(title) <= maxFieldLength, "title", "must not be more than 500 bytes long")
}

func validateURL(v *common.Validator, url string) {
	v.Check(v.NotBlank(url), "url", "must be provided")
	v.Check(len(url) <= maxFieldLength, "url", "must not be more than 500 bytes long")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(len(author) <= maxFieldLength, "author", "must not be more than 500 bytes long")
}

func validateID(v *common.Validator, id, name string) {
	v.Check(id != "", name, "must be provided")
}

// validateLikes coerces a decoded JSON value to a like count. Missing, null,
// false, 0 and "" all mean zero; numbers and numeric strings must be
// non-negative integers.
func validateLikes(v *common.Validator, raw any) int {
	likes, ok := parseLikes(raw)
	v.Check(ok, "likes", "must be a non-negative integer")
	return likes
}

func parseLikes(raw any) (int, bool) {
	switch value := raw.(type) {
	case nil:
		return 0, true
	case bool:
		return 0, !value
	case int:
		return value, value >= 0
	case float64:
		if value < 0 || value != math.Trunc(value) || value > math.MaxInt32 {
			return 0, false
		}
		return int(value), true
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return 0, true
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
