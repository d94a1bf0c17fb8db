package util

import (
	"regexp"
	"strings"
)

var (
	paragraphTag = regexp.MustCompile(`</?p>`)
	codeTag      = regexp.MustCompile(`</?code>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
	blankRun     = regexp.MustCompile(`[ \t]+`)
)

// CleanDocumentation turns botocore HTML documentation into plain text.
// Paragraph tags are dropped, <code> spans become single quotes, any other
// tag is stripped and runs of spaces collapse to one.
func CleanDocumentation(doc string) string {
	doc = paragraphTag.ReplaceAllString(doc, "")
	doc = codeTag.ReplaceAllString(doc, "'")
	doc = anyTag.ReplaceAllString(doc, "")
	doc = blankRun.ReplaceAllString(doc, " ")
	return strings.TrimSpace(doc)
}
