// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Config files, resume files and the front matter of composed markup all go
// through it.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// frontMatterDelim opens and closes a front matter block.
const frontMatterDelim = "---"

var (
	ErrNilData          = errors.New("yamlutil: nil or empty data")
	ErrNilDestination   = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge    = errors.New("yamlutil: input exceeds maximum size")
	ErrUnterminatedMeta = errors.New("yamlutil: front matter not terminated")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes YAML (or JSON, which YAML accepts) into v.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// document body. Content without a front matter block is returned unchanged
// with empty meta. An opening delimiter without a closing one is an error.
func SplitFrontMatter(content string) (meta, body string, err error) {
	first, rest, ok := strings.Cut(content, "\n")
	if strings.TrimRight(first, " \t\r") != frontMatterDelim {
		return "", content, nil
	}
	if !ok {
		return "", "", ErrUnterminatedMeta
	}

	var b strings.Builder
	for rest != "" {
		line, next, _ := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t\r") == frontMatterDelim {
			return b.String(), next, nil
		}
		b.WriteString(line)
		b.WriteByte('\n')
		rest = next
	}
	return "", "", ErrUnterminatedMeta
}
