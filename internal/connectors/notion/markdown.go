package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
)

// childLister fetches a block's children. Satisfied by Client; tests use a
// canned fake.
type childLister interface {
	children(ctx context.Context, id notionapi.BlockID) ([]notionapi.Block, error)
}

// renderBlocks renders the children of parent to Markdown. Toggle children
// are fetched lazily and indented one level.
func renderBlocks(ctx context.Context, lister childLister, parent notionapi.BlockID, depth int) (string, error) {
	blocks, err := lister.children(ctx, parent)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	ordinal := 0
	for _, block := range blocks {
		if _, ok := block.(*notionapi.NumberedListItemBlock); ok {
			ordinal++
		} else {
			ordinal = 0
		}
		line, err := renderBlock(ctx, lister, block, depth, ordinal)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
	}
	return b.String(), nil
}

func renderBlock(ctx context.Context, lister childLister, block notionapi.Block, depth, ordinal int) (string, error) {
	indent := strings.Repeat("  ", depth)

	switch bl := block.(type) {
	case *notionapi.ParagraphBlock:
		text := richText(bl.Paragraph.RichText)
		if text == "" {
			return "\n", nil
		}
		return indent + text + "\n\n", nil

	case *notionapi.Heading1Block:
		return indent + "# " + richText(bl.Heading1.RichText) + "\n\n", nil

	case *notionapi.Heading2Block:
		return indent + "## " + richText(bl.Heading2.RichText) + "\n\n", nil

	case *notionapi.Heading3Block:
		return indent + "### " + richText(bl.Heading3.RichText) + "\n\n", nil

	case *notionapi.BulletedListItemBlock:
		return indent + "- " + richText(bl.BulletedListItem.RichText) + "\n", nil

	case *notionapi.NumberedListItemBlock:
		return indent + fmt.Sprintf("%d. ", ordinal) + richText(bl.NumberedListItem.RichText) + "\n", nil

	case *notionapi.ToDoBlock:
		box := "[ ]"
		if bl.ToDo.Checked {
			box = "[x]"
		}
		return indent + "- " + box + " " + richText(bl.ToDo.RichText) + "\n", nil

	case *notionapi.QuoteBlock:
		return indent + "> " + richText(bl.Quote.RichText) + "\n\n", nil

	case *notionapi.CodeBlock:
		code := richText(bl.Code.RichText)
		lang := bl.Code.Language
		if lang == "plain text" {
			lang = ""
		}
		return indent + "```" + lang + "\n" + code + "\n" + indent + "```\n\n", nil

	case *notionapi.DividerBlock:
		return indent + "---\n\n", nil

	case *notionapi.ImageBlock:
		url := ""
		if bl.Image.File != nil {
			url = bl.Image.File.URL
		} else if bl.Image.External != nil {
			url = bl.Image.External.URL
		}
		caption := plainText(bl.Image.Caption)
		return indent + fmt.Sprintf("![%s](%s)\n\n", caption, url), nil

	case *notionapi.CalloutBlock:
		return indent + "> " + richText(bl.Callout.RichText) + "\n\n", nil

	case *notionapi.ToggleBlock:
		line := indent + "- " + richText(bl.Toggle.RichText) + "\n"
		if block.GetHasChildren() {
			nested, err := renderBlocks(ctx, lister, block.GetID(), depth+1)
			if err != nil {
				return "", err
			}
			line += nested
		}
		return line, nil

	default:
		// Unsupported block types are skipped rather than failing the sync.
		return "", nil
	}
}

// richText renders rich-text spans with their Markdown annotations.
func richText(rts []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range rts {
		b.WriteString(annotate(rt))
	}
	return b.String()
}

func annotate(rt notionapi.RichText) string {
	text := rt.PlainText
	if rt.Text != nil && rt.Text.Content != "" {
		text = rt.Text.Content
	}

	if a := rt.Annotations; a != nil {
		if a.Code {
			text = "`" + text + "`"
		}
		if a.Bold {
			text = "**" + text + "**"
		}
		if a.Italic {
			text = "*" + text + "*"
		}
		if a.Strikethrough {
			text = "~~" + text + "~~"
		}
		if a.Underline {
			text = "<u>" + text + "</u>"
		}
	}

	if rt.Href != "" {
		text = "[" + text + "](" + rt.Href + ")"
	}
	return text
}
