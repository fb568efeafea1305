package document

import "strings"

// blockKind classifies parsed markup blocks.
type blockKind int

const (
	blockGap blockKind = iota
	blockHeading1
	blockHeading2
	blockBullet
	blockNestedBullet
	blockParagraph
)

type block struct {
	kind blockKind
	text string
}

// CleanMarkup strips residual code-fence markers an upstream generator may
// emit and collapses runs of 3+ blank lines to one.
func CleanMarkup(content string) string {
	content = strings.ReplaceAll(content, "```markdown", "")
	content = strings.ReplaceAll(content, "```", "")
	for strings.Contains(content, "\n\n\n") {
		content = strings.ReplaceAll(content, "\n\n\n", "\n\n")
	}
	return content
}

// parseMarkup converts the constrained plain-text markup into a block
// sequence in a single stateful pass. Indented non-bullet lines inside a
// bullet list continue the previous bullet.
func parseMarkup(content string) []block {
	var blocks []block
	inBulletList := false

	appendToLastBullet := func(text string) bool {
		for i := len(blocks) - 1; i >= 0; i-- {
			switch blocks[i].kind {
			case blockBullet, blockNestedBullet:
				blocks[i].text += " " + text
				return true
			case blockGap:
				continue
			default:
				return false
			}
		}
		return false
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blocks = append(blocks, block{kind: blockGap})
			inBulletList = false

		case strings.HasPrefix(trimmed, "# "):
			blocks = append(blocks, block{kind: blockHeading1, text: strings.TrimPrefix(trimmed, "# ")})
			inBulletList = false

		case strings.HasPrefix(trimmed, "## "):
			blocks = append(blocks, block{kind: blockHeading2, text: strings.TrimPrefix(trimmed, "## ")})
			inBulletList = false

		case strings.HasPrefix(line, "  * ") || strings.HasPrefix(line, "  - "):
			blocks = append(blocks, block{kind: blockNestedBullet, text: "○ " + nonBreaking(line[4:])})

		case strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- "):
			blocks = append(blocks, block{kind: blockBullet, text: "• " + nonBreaking(trimmed[2:])})
			inBulletList = true

		case inBulletList && strings.HasPrefix(line, "  "):
			if !appendToLastBullet(nonBreaking(trimmed)) {
				blocks = append(blocks, block{kind: blockParagraph, text: nonBreaking(trimmed)})
			}

		default:
			blocks = append(blocks, block{kind: blockParagraph, text: nonBreaking(trimmed)})
			inBulletList = false
		}
	}
	return blocks
}

// nonBreaking preserves author-intended alignment: internal double spaces
// become non-breaking space pairs.
func nonBreaking(text string) string {
	return strings.ReplaceAll(text, "  ", "  ")
}
