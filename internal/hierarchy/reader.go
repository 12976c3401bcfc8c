// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hierarchy

//go:generate mockgen -source=reader.go -destination=../mock/file_reader_mock.go -package=mock

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// FileReader reads whole files. A missing file must be reported with an
// error matching fs.ErrNotExist.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// OSReader reads files from the local file system.
type OSReader struct{}

// ReadFile implements FileReader.
func (OSReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// ErrUnknownEncoding is returned for encoding labels x/text does not know.
var ErrUnknownEncoding = errors.New("unknown file encoding")

var utf8BOM = []byte("\xef\xbb\xbf")

// ReadFile reads name with reader and converts its content from encoding to
// UTF-8. The second return value is false when the file does not exist.
func ReadFile(reader FileReader, name, encoding string) ([]byte, bool, error) {
	raw, err := reader.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error reading file %q: %w", name, err)
	}

	decoded, err := Decode(raw, encoding)
	if err != nil {
		return nil, true, fmt.Errorf("error decoding file %q: %w", name, err)
	}
	return decoded, true, nil
}

// Decode converts raw from the named encoding to UTF-8 and strips a leading
// byte order mark. Labels follow the WHATWG encoding standard ("utf8",
// "utf-16le", "latin1", ...); an empty label means UTF-8.
func Decode(raw []byte, encoding string) ([]byte, error) {
	label := strings.TrimSpace(encoding)
	if label == "" {
		return bytes.TrimPrefix(raw, utf8BOM), nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownEncoding, encoding, err)
	}
	if enc == unicode.UTF8 {
		return bytes.TrimPrefix(raw, utf8BOM), nil
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(decoded, utf8BOM), nil
}
