package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
)

// HTML renders text with the line rules and converts the result to HTML.
// The goldmark tree is built from the classified nodes, so the output keeps
// exactly the structure the terminal printer shows.
func HTML(text string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Renderer().Render(&buf, nil, Document(Nodes(text))); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// Document converts classified nodes into a goldmark document. Adjacent list
// items share one bullet list and breaks produce no block.
func Document(nodes []Node) *ast.Document {
	doc := ast.NewDocument()
	for _, block := range Group(nodes) {
		if block.List {
			list := ast.NewList('-')
			for _, node := range block.Nodes {
				item := ast.NewListItem(2)
				line := ast.NewTextBlock()
				if node.Kind == LabeledListItem {
					line.AppendChild(line, strong(node.Label))
					line.AppendChild(line, raw(": "+node.Value))
				} else {
					line.AppendChild(line, raw(node.Text))
				}
				item.AppendChild(item, line)
				list.AppendChild(list, item)
			}
			doc.AppendChild(doc, list)
			continue
		}

		node := block.Nodes[0]
		switch node.Kind {
		case Break:
			continue
		case Heading1, Heading2:
			level := 1
			if node.Kind == Heading2 {
				level = 2
			}
			heading := ast.NewHeading(level)
			heading.AppendChild(heading, raw(node.Text))
			doc.AppendChild(doc, heading)
		case BoldParagraph:
			doc.AppendChild(doc, paragraph(strong(node.Text)))
		case NumberedLabel:
			doc.AppendChild(doc, paragraph(raw(node.Number), strong(node.Title)))
		default:
			doc.AppendChild(doc, paragraph(raw(node.Text)))
		}
	}
	return doc
}

func paragraph(children ...ast.Node) *ast.Paragraph {
	p := ast.NewParagraph()
	for _, c := range children {
		p.AppendChild(p, c)
	}
	return p
}

func strong(text string) *ast.Emphasis {
	e := ast.NewEmphasis(2)
	e.AppendChild(e, raw(text))
	return e
}

// raw text is escaped for HTML but never parsed for markdown.
func raw(text string) *ast.String {
	s := ast.NewString([]byte(text))
	s.SetRaw(true)
	return s
}
