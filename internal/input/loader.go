package input

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrInvalidEncoding is returned for requirements that are not valid UTF-8.
var ErrInvalidEncoding = errors.New("requirements text is not valid UTF-8")

// Requirements holds a loaded requirements text with derived metadata.
type Requirements struct {
	Source string // file path, "-" for stdin, or "example:<name>"
	Hash   string // "sha256:<hex>"
	Text   string
}

// Load reads requirements from path, or from stdin when path is "-".
func Load(path string, stdin io.Reader) (*Requirements, error) {
	if path == Stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return FromBytes(Stdin, data)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading requirements file: %w", err)
	}
	return FromBytes(path, data)
}

// FromBytes validates data and wraps it as Requirements. Empty data is valid.
func FromBytes(source string, data []byte) (*Requirements, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: %w", source, ErrInvalidEncoding)
	}
	return &Requirements{
		Source: source,
		Hash:   Hash(string(data)),
		Text:   string(data),
	}, nil
}

// Hash returns the "sha256:<hex>" digest of text.
func Hash(text string) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256([]byte(text)))
}
