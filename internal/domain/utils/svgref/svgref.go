// Package svgref rewrites external asset references in SVG documents.
package svgref

import (
	"regexp"
	"strings"
)

var hrefRe = regexp.MustCompile(`(xlink:href|\bhref)="([^"]*)"`)

// Rewrite replaces every xlink:href value that is not a data URI, and
// every href value that is neither a data URI nor a same-document fragment,
// with replacement.
func Rewrite(doc, replacement string) string {
	return hrefRe.ReplaceAllStringFunc(doc, func(m string) string {
		sub := hrefRe.FindStringSubmatch(m)
		attr, value := sub[1], sub[2]
		if strings.HasPrefix(value, "data:") {
			return m
		}
		if attr == "href" && strings.HasPrefix(value, "#") {
			return m
		}
		return attr + `="` + replacement + `"`
	})
}
