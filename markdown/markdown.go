// Package markdown parses the inline formatting used in post text into a
// tree of nodes. Two constructs are recognised: **bold** spans and
// [label](url) links.
//
// Parsing is a single pass. Text is first split on links; each link label
// and each remaining segment is then split on bold spans. Bold content is
// not parsed again, so links inside bold and bold inside bold stay literal.
// Malformed markup is returned as plain text.
package markdown

import (
	"regexp"
	"strings"
)

var (
	reLink = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reBold = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// Node is one inline element: Text, Bold or Link.
type Node interface {
	inline()
}

// Text is literal text.
type Text string

// Bold is strongly emphasised content.
type Bold struct {
	Children []Node
}

// Link points at Href. The URL is kept verbatim; callers writing markup
// must decide whether it is safe to emit.
type Link struct {
	Href  string
	Label []Node
}

func (Text) inline() {}
func (Bold) inline() {}
func (Link) inline() {}

// Render parses text into inline nodes. It never fails and returns nil for
// empty input.
func Render(text string) []Node {
	if text == "" {
		return nil
	}
	var nodes []Node
	split(text, reLink, func(seg string, sub []string) {
		if sub == nil {
			nodes = append(nodes, parseBold(seg)...)
			return
		}
		nodes = append(nodes, Link{Href: sub[2], Label: parseBold(sub[1])})
	})
	return nodes
}

func parseBold(s string) []Node {
	var nodes []Node
	split(s, reBold, func(seg string, sub []string) {
		if sub == nil {
			nodes = append(nodes, Text(seg))
			return
		}
		var b Bold
		if sub[1] != "" {
			b.Children = []Node{Text(sub[1])}
		}
		nodes = append(nodes, b)
	})
	return nodes
}

// split walks s in order, calling fn for every non-empty segment between
// matches of re (with sub == nil) and for every match (with its submatches).
func split(s string, re *regexp.Regexp, fn func(seg string, sub []string)) {
	last := 0
	for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
		if loc[0] > last {
			fn(s[last:loc[0]], nil)
		}
		sub := make([]string, len(loc)/2)
		for i := range sub {
			if loc[2*i] >= 0 {
				sub[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		fn(s[loc[0]:loc[1]], sub)
		last = loc[1]
	}
	if last < len(s) {
		fn(s[last:], nil)
	}
}

// PlainText flattens nodes back to their visible text.
func PlainText(nodes []Node) string {
	var b strings.Builder
	writePlain(&b, nodes)
	return b.String()
}

func writePlain(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			b.WriteString(string(n))
		case Bold:
			writePlain(b, n.Children)
		case Link:
			writePlain(b, n.Label)
		}
	}
}
