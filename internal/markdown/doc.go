package markdown

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document represents a Markdown file with YAML frontmatter.
type Document struct {
	Frontmatter map[string]any
	Body        string
}

// WriteFile renders the document to path: frontmatter between "---" fences,
// then the body.
func WriteFile(path string, d Document) error {
	var b strings.Builder
	if len(d.Frontmatter) > 0 {
		fm, err := yaml.Marshal(d.Frontmatter)
		if err != nil {
			return fmt.Errorf("marshal frontmatter: %w", err)
		}
		b.WriteString("---\n")
		b.Write(fm)
		b.WriteString("---\n\n")
	}
	b.WriteString(d.Body)
	if !strings.HasSuffix(d.Body, "\n") {
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ParseFile reads a Markdown file and extracts YAML frontmatter and body.
// Frontmatter is expected at the top of the file between two lines
// containing only "---".
func ParseFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	peek, err := br.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return Document{}, err
	}
	hasFM := string(peek) == "---"

	var fmBuf strings.Builder
	var bodyBuf strings.Builder

	if hasFM {
		if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, err
		}
		for {
			l, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return Document{}, err
			}
			if strings.TrimSpace(l) == "---" {
				break
			}
			fmBuf.WriteString(l)
			if errors.Is(err, io.EOF) {
				break
			}
		}
		// Skip the blank separator line, if present.
		if peek, err := br.Peek(1); err == nil && peek[0] == '\n' {
			br.ReadByte()
		}
	}
	for {
		l, err := br.ReadString('\n')
		bodyBuf.WriteString(l)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, err
		}
	}

	d := Document{
		Frontmatter: map[string]any{},
		Body:        bodyBuf.String(),
	}
	if hasFM {
		if err := yaml.Unmarshal([]byte(fmBuf.String()), &d.Frontmatter); err != nil {
			return Document{}, err
		}
	}
	return d, nil
}
