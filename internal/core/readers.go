package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileKind identifies which Source Reader handles a payload.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindSpreadsheet
	KindCSV
	KindText
)

func (k FileKind) String() string {
	switch k {
	case KindSpreadsheet:
		return "spreadsheet"
	case KindCSV:
		return "csv"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// fileExtensions maps accepted upload extensions to their reader.
var fileExtensions = map[string]FileKind{
	".xlsx": KindSpreadsheet,
	".xls":  KindSpreadsheet,
	".csv":  KindCSV,
}

// DetectKind selects a reader from the file name's extension. The match is
// case-insensitive. Any extension other than xlsx, xls or csv returns
// ErrUnsupportedFileType.
func DetectKind(fileName string) (FileKind, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if kind, ok := fileExtensions[ext]; ok {
		return kind, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
}

// AcceptedExtensions returns the accepted file extensions, sorted.
func AcceptedExtensions() []string {
	exts := make([]string, 0, len(fileExtensions))
	for ext := range fileExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ReadResult is the output of one Source Reader pass.
type ReadResult struct {
	Rows         []RawRow
	SkippedLines int // text lines dropped for having too few segments
}

// SourceReader turns a payload into RawRows. Readers do no validation beyond
// what is needed to decode their format.
type SourceReader interface {
	Read(ctx context.Context, payload []byte) (ReadResult, error)
}

// ReaderFunc adapts a function to the SourceReader interface.
type ReaderFunc func(ctx context.Context, payload []byte) (ReadResult, error)

func (f ReaderFunc) Read(ctx context.Context, payload []byte) (ReadResult, error) {
	return f(ctx, payload)
}

var (
	readers   = make(map[FileKind]SourceReader)
	readersMu sync.RWMutex
)

// RegisterReader installs the reader for a kind.
// Panics if a reader for the kind is already registered.
func RegisterReader(kind FileKind, r SourceReader) {
	readersMu.Lock()
	defer readersMu.Unlock()

	if _, exists := readers[kind]; exists {
		panic(fmt.Sprintf("reader already registered: %s", kind))
	}
	readers[kind] = r
}

// ReaderFor returns the reader registered for kind.
func ReaderFor(kind FileKind) (SourceReader, bool) {
	readersMu.RLock()
	defer readersMu.RUnlock()

	r, ok := readers[kind]
	return r, ok
}

func init() {
	RegisterReader(KindSpreadsheet, ReaderFunc(readSpreadsheet))
	RegisterReader(KindCSV, ReaderFunc(readCSV))
	RegisterReader(KindText, ReaderFunc(func(ctx context.Context, payload []byte) (ReadResult, error) {
		return ReadText(ctx, string(payload))
	}))
}

// rowFromCells builds a RawRow from a header and one record. Empty cells and
// cells under a blank header are omitted. Returns nil if every cell is empty.
func rowFromCells(header, cells []string) RawRow {
	row := make(RawRow, len(header))
	for i, cell := range cells {
		if i >= len(header) || header[i] == "" {
			continue
		}
		if strings.TrimSpace(cell) == "" {
			continue
		}
		row[header[i]] = cell
	}
	if len(row) == 0 {
		return nil
	}
	return row
}

// cleanHeader trims whitespace and stray quoting from header cells.
func cleanHeader(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = CleanCell(c)
	}
	return out
}
