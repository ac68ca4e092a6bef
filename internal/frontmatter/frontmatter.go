// Package frontmatter extracts the fenced YAML header block from phase and PRD
// markdown files.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissing indicates the document did not start with a YAML fence.
	ErrMissing = errors.New("frontmatter: missing header block")
	// ErrMalformed indicates the fences were present but unbalanced.
	ErrMalformed = errors.New("frontmatter: malformed header block")
)

// Split separates a document into its raw YAML header and body. The header is
// the text between `---` fences at the top of the file.
func Split(content []byte) (header, body []byte, err error) {
	if len(content) == 0 {
		return nil, nil, ErrMissing
	}
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, nil, ErrMissing
	}
	rest := normalized[4:]
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) < 2 {
		// Allow a file that is nothing but a header closed by a trailing fence.
		trimmed := bytes.TrimRight(rest, "\n")
		if bytes.HasSuffix(trimmed, []byte("\n---")) {
			return trimmed[:len(trimmed)-len("\n---")], nil, nil
		}
		return nil, nil, ErrMalformed
	}
	return parts[0], parts[1], nil
}

// Decode parses the header block of content into out.
func Decode(content []byte, out any) error {
	header, _, err := Split(content)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(header, out); err != nil {
		return fmt.Errorf("frontmatter: parse header: %w", err)
	}
	return nil
}

func normalizeNewlines(content []byte) []byte {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))
}
