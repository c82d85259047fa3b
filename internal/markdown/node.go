package markdown

// Kind identifies the block a single line renders to.
type Kind int

const (
	Break Kind = iota
	Heading1
	Heading2
	BoldParagraph
	NumberedLabel
	LabeledListItem
	ListItem
	Paragraph
)

var kindNames = map[Kind]string{
	Break:           "break",
	Heading1:        "heading1",
	Heading2:        "heading2",
	BoldParagraph:   "bold",
	NumberedLabel:   "numbered",
	LabeledListItem: "labeled_item",
	ListItem:        "item",
	Paragraph:       "paragraph",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsList reports whether nodes of this kind belong in a list container.
func (k Kind) IsList() bool {
	return k == ListItem || k == LabeledListItem
}

// Node is one renderable unit produced from exactly one source line.
// Only the fields relevant to Kind are set.
type Node struct {
	Kind Kind `json:"kind" yaml:"kind"`
	// Text is set for headings, bold paragraphs, list items and paragraphs.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	// Number and Title are set for NumberedLabel.
	Number string `json:"number,omitempty" yaml:"number,omitempty"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	// Label and Value are set for LabeledListItem.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Block groups adjacent list-kind nodes so consumers can wrap them in one
// container. Every other node is a block of its own.
type Block struct {
	List  bool
	Nodes []Node
}

// MarshalText encodes the kind by name in json and yaml output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
