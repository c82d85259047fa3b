package markdown

import (
	"regexp"
	"strings"
)

const boldMarker = "**"

var (
	numberedLabelPattern = regexp.MustCompile(`^\d+\.\s\*\*`)
	labeledItemPattern   = regexp.MustCompile(`- \*\*(.*?)\*\*:\s*(.*)`)
)

// rule pairs a line predicate with the node it builds. build may refuse the
// line by returning false, in which case the next rule is tried.
type rule struct {
	kind  Kind
	match func(line string) bool
	build func(line string) (Node, bool)
}

// rules are evaluated in order and the first match wins. Headings look at the
// raw line while list items look at the trimmed one.
var rules = []rule{
	{
		kind:  Break,
		match: func(line string) bool { return strings.TrimSpace(line) == "" },
		build: func(string) (Node, bool) { return Node{Kind: Break}, true },
	},
	{
		kind:  Heading1,
		match: func(line string) bool { return strings.HasPrefix(line, "# ") },
		build: func(line string) (Node, bool) { return Node{Kind: Heading1, Text: line[2:]}, true },
	},
	{
		kind:  Heading2,
		match: func(line string) bool { return strings.HasPrefix(line, "## ") },
		build: func(line string) (Node, bool) { return Node{Kind: Heading2, Text: line[3:]}, true },
	},
	{
		kind: BoldParagraph,
		match: func(line string) bool {
			return len(line) >= 2*len(boldMarker) &&
				strings.HasPrefix(line, boldMarker) &&
				strings.HasSuffix(line, boldMarker)
		},
		build: func(line string) (Node, bool) {
			return Node{Kind: BoldParagraph, Text: line[len(boldMarker) : len(line)-len(boldMarker)]}, true
		},
	},
	{
		kind:  NumberedLabel,
		match: numberedLabelPattern.MatchString,
		build: func(line string) (Node, bool) {
			parts := strings.Split(line, boldMarker)
			node := Node{Kind: NumberedLabel, Number: parts[0]}
			if len(parts) > 1 {
				node.Title = parts[1]
			}
			return node, true
		},
	},
	{
		kind:  LabeledListItem,
		match: func(line string) bool { return strings.HasPrefix(strings.TrimSpace(line), "- **") },
		build: func(line string) (Node, bool) {
			m := labeledItemPattern.FindStringSubmatch(line)
			if m == nil {
				return Node{}, false
			}
			return Node{Kind: LabeledListItem, Label: m[1], Value: m[2]}, true
		},
	},
	{
		kind:  ListItem,
		match: func(line string) bool { return strings.HasPrefix(strings.TrimSpace(line), "- ") },
		build: func(line string) (Node, bool) { return Node{Kind: ListItem, Text: line[2:]}, true },
	},
}

// Classify maps one line of text to exactly one node.
func Classify(line string) Node {
	for _, r := range rules {
		if !r.match(line) {
			continue
		}
		if node, ok := r.build(line); ok {
			return node
		}
	}

	return Node{Kind: Paragraph, Text: line}
}
