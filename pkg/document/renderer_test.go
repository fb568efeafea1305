package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkupStripsFences(t *testing.T) {
	in := "```markdown\n# Title\nbody\n```"
	out := CleanMarkup(in)
	assert.NotContains(t, out, "```")
	assert.Contains(t, out, "# Title")
}

func TestCleanMarkupCollapsesBlankRuns(t *testing.T) {
	in := "a\n\n\n\n\nb"
	assert.Equal(t, "a\n\nb", CleanMarkup(in))
}

func TestParseMarkupRoundTrip(t *testing.T) {
	in := strings.Join([]string{
		"# Title",
		"## Sub",
		"* first bullet",
		"* second bullet",
		"  with a continuation",
	}, "\n")

	blocks := parseMarkup(in)

	var headings, subheadings, bullets []block
	for _, b := range blocks {
		switch b.kind {
		case blockHeading1:
			headings = append(headings, b)
		case blockHeading2:
			subheadings = append(subheadings, b)
		case blockBullet:
			bullets = append(bullets, b)
		}
	}

	require.Len(t, headings, 1)
	assert.Equal(t, "Title", headings[0].text)
	require.Len(t, subheadings, 1)
	assert.Equal(t, "Sub", subheadings[0].text)
	require.Len(t, bullets, 2)
	assert.Equal(t, "• first bullet", bullets[0].text)
	// The continuation joins the second bullet rather than starting a block.
	assert.Equal(t, "• second bullet with a continuation", bullets[1].text)
}

func TestParseMarkupNestedBullets(t *testing.T) {
	blocks := parseMarkup("* parent\n  * nested item")

	require.Len(t, blocks, 2)
	assert.Equal(t, blockBullet, blocks[0].kind)
	assert.Equal(t, blockNestedBullet, blocks[1].kind)
	assert.Equal(t, "○ nested item", blocks[1].text)
}

func TestParseMarkupDashBullets(t *testing.T) {
	blocks := parseMarkup("- dash bullet")
	require.Len(t, blocks, 1)
	assert.Equal(t, blockBullet, blocks[0].kind)
	assert.Equal(t, "• dash bullet", blocks[0].text)
}

func TestParseMarkupBlankLineExitsBulletList(t *testing.T) {
	blocks := parseMarkup("* bullet\n\n  indented paragraph after gap")

	require.Len(t, blocks, 3)
	assert.Equal(t, blockBullet, blocks[0].kind)
	assert.Equal(t, "• bullet", blocks[0].text)
	assert.Equal(t, blockGap, blocks[1].kind)
	// The blank line ended the list; the indented line is a paragraph.
	assert.Equal(t, blockParagraph, blocks[2].kind)
}

func TestParseMarkupPreservesDoubleSpaces(t *testing.T) {
	blocks := parseMarkup("* name:  value")
	require.Len(t, blocks, 1)
	assert.Equal(t, "• name:  value", blocks[0].text)
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()
	data, contentType := r.Render("Progress Report", "# Summary\n* doing well")

	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRenderPlainTextDegradation(t *testing.T) {
	r := NewTextRenderer()
	data, contentType := r.Render("Progress Report", "# Summary\nbody")

	assert.Equal(t, "text/plain; charset=utf-8", contentType)
	assert.Equal(t, "Progress Report\n\n# Summary\nbody", string(data))
}

func TestRenderCleansGeneratorArtifacts(t *testing.T) {
	r := NewTextRenderer()
	data, _ := r.Render("T", "```markdown\nline\n```\n\n\n\nnext")

	assert.NotContains(t, string(data), "```")
	assert.NotContains(t, string(data), "\n\n\n")
}
