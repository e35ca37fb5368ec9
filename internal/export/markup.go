package export

import (
	"regexp"
	"strings"
)

var reLink = regexp.MustCompile(`<([^<>|]+)\|([^<>]+)>`)

// fixMarkup rewrites Slack inline markup into plain text:
// a <URL|LABEL> token becomes "LABEL (URL)", and the HTML-escaped
// quote entity is unescaped. The rewrite is idempotent because the
// replacement contains none of the token's delimiters.
func fixMarkup(s string) string {
	s = reLink.ReplaceAllString(s, "$2 ($1)")
	return strings.ReplaceAll(s, "&gt;", ">")
}
