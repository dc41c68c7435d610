package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Fetcher reads a whole table into memory and normalises it for the
// tokenizer
type Fetcher struct {
	encoding encoding.Encoding // nil means UTF-8 passthrough
}

// NewFetcher creates a Fetcher for the named input encoding
func NewFetcher(encodingName string) (*Fetcher, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return &Fetcher{encoding: enc}, nil
}

// FetchResult contains the normalised input text
type FetchResult struct {
	Text   string
	Source string
	Bytes  int // raw bytes read
}

// LookupEncoding maps a config name to a decoder. UTF-8 input is not run
// through a decoder so that invalid bytes reach the tokenizer, which drops
// them.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	default:
		return nil, fmt.Errorf("unsupported input encoding %q", name)
	}
}

// Fetch reads r to the end. The text is decoded, a UTF-8 byte order mark is
// removed, CRLF line endings become LF and a single trailing line terminator
// is dropped so that it does not produce an empty last row.
func (f *Fetcher) Fetch(ctx context.Context, r io.Reader, source string) (*FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	text := string(raw)
	if f.encoding != nil {
		decoded, _, err := transform.String(f.encoding.NewDecoder(), text)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", source, err)
		}
		text = decoded
	}

	return &FetchResult{
		Text:   normalize(text),
		Source: source,
		Bytes:  len(raw),
	}, nil
}

// OpenInput opens the table at path. An empty path or "-" selects stdin,
// which is never closed.
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), "stdin", nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open file: %w", err)
	}
	return file, path, nil
}

func normalize(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSuffix(text, "\n")
}
