package blogservice

import "regexp"

var scriptTagRX = regexp.MustCompile(`(?i)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeText strips script elements from user supplied blog fields.
func sanitizeText(s string) string {
	return scriptTagRX.ReplaceAllString(s, "")
}
