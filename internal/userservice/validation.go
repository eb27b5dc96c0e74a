package userservice

import (
	"regexp"
	"strings"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(len(username) >= MinCredentialLength, "username", "is too short (minimum length is 3)")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= MinCredentialLength, "password", "is too short (minimum length is 3)")
	// bcrypt only hashes the first 72 bytes and rejects anything longer
	v.Check(len(password) <= MaxPasswordLength, "password", "must not be more than 72 bytes long")
}

func validateEmail(v *common.Validator, email string) {
	if email == "" {
		return
	}
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

func validateLogin(v *common.Validator, username, password string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
}

// ValidateToken checks the shape of a signed token: three dot separated segments.
func ValidateToken(v *common.Validator, token string) {
	v.Check(token != "", "token", "must be provided")
	v.Check(strings.Count(token, ".") == 2, "token", "invalid token")
}
