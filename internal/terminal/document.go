package terminal

import (
	"github.com/recruitgenius/recruit-cli/internal/app"
	"github.com/recruitgenius/recruit-cli/internal/markdown"
)

const listIndent = "  "

// Document prints text with the document rules shared by chat replies, job
// descriptions and the offer generator.
func (p *Printer) Document(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.document(text, "")
}

func (p *Printer) document(text, indent string) {
	for _, block := range markdown.Group(markdown.Nodes(text)) {
		for _, node := range block.Nodes {
			p.println(indent + p.node(node))
		}
	}
}

func (p *Printer) node(n markdown.Node) string {
	switch n.Kind {
	case markdown.Break:
		return ""
	case markdown.Heading1:
		return p.paint(bold+underline, n.Text)
	case markdown.Heading2:
		return p.paint(bold, n.Text)
	case markdown.BoldParagraph:
		return p.paint(bold, n.Text)
	case markdown.NumberedLabel:
		return n.Number + p.paint(bold, n.Title)
	case markdown.LabeledListItem:
		return listIndent + "• " + p.paint(bold, n.Label) + ": " + n.Value
	case markdown.ListItem:
		return listIndent + "• " + n.Text
	default:
		return n.Text
	}
}

// Message prints one chat turn. Assistant replies go through Document.
func (p *Printer) Message(m app.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m.Role == app.RoleUser {
		p.println(p.paint(magenta+bold, "You: ") + m.Content)
		return
	}

	p.println(p.paint(cyan+bold, "Assistant:"))
	p.document(m.Content, listIndent)
	p.println()
}
