package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// Document is what gets written to a .docx file. Summary is markdown and may be empty.
type Document struct {
	Title      string
	Transcript string
	Summary    string
}

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullet
	blockNumbered
)

type block struct {
	kind  blockKind
	level int
	text  string
}

// WriteDocx renders doc into outputPath, creating parent directories as needed.
func WriteDocx(doc Document, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	d, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addStyledRun(d.AddParagraph(""), doc.Title, true, 16)

	if strings.TrimSpace(doc.Summary) != "" {
		addStyledRun(d.AddParagraph(""), "Summary", true, 15)
		for _, b := range parseMarkdown(doc.Summary) {
			p := d.AddParagraph("")
			switch b.kind {
			case blockHeading:
				addStyledRun(p, b.text, true, headingSize(b.level))
			case blockBullet:
				addRichText(p, "• "+b.text)
			default:
				addRichText(p, b.text)
			}
		}
	}

	addStyledRun(d.AddParagraph(""), "Transcript", true, 15)
	for _, para := range transcriptParagraphs(doc.Transcript) {
		d.AddParagraph("").AddText(para).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := d.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save %s: %w", outputPath, err)
	}
	return nil
}

// parseMarkdown splits summary markdown into the blocks the docx renderer understands.
func parseMarkdown(markdown string) []block {
	var blocks []block
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, block{kind: blockBullet, text: m[1]})
			continue
		}
		if reNumbered.MatchString(trimmed) {
			blocks = append(blocks, block{kind: blockNumbered, text: trimmed})
			continue
		}
		blocks = append(blocks, block{kind: blockParagraph, text: trimmed})
	}
	return blocks
}

// transcriptParagraphs returns the non-empty lines of a transcript, dropping consecutive repeats.
func transcriptParagraphs(transcript string) []string {
	var out []string
	for _, line := range strings.Split(transcript, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == t {
			continue
		}
		out = append(out, t)
	}
	return out
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
