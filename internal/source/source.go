// Package source opens game archives for reading. Plain PGN files are read
// directly; .bz2 and .zst archives (the formats lichess database dumps ship
// in) are decompressed transparently.
package source

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/dsnet/compress/bzip2"
	"github.com/inhies/go-bytesize"
	"github.com/klauspost/compress/zstd"

	"github.com/lgbarn/pgn-dataset/internal/errors"
)

// countingReader wraps a reader and tracks the bytes read through it.
type countingReader struct {
	r         io.Reader
	bytesRead int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.bytesRead += int64(n)
	return n, err
}

// Archive is a readable game archive with progress reporting. It implements
// io.ReadCloser over the (decompressed) game stream.
type Archive struct {
	r       io.Reader
	raw     *countingReader
	size    int64
	closers []func() error
}

// Open opens the archive at path, choosing a reader by file extension:
// .zst and .bz2 are decompressed, anything else is read as plain PGN.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified archives
	if err != nil {
		return nil, errors.Wrapf(err, "opening archive %s", path)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close() //nolint:errcheck,gosec // G104: cleanup on error path
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	a := &Archive{
		raw:     &countingReader{r: file},
		size:    stat.Size(),
		closers: []func() error{file.Close},
	}

	switch filepath.Ext(path) {
	case ".zst":
		dec, err := zstd.NewReader(a.raw)
		if err != nil {
			file.Close() //nolint:errcheck,gosec // G104: cleanup on error path
			return nil, errors.Wrapf(err, "opening zstd stream %s", path)
		}
		a.r = bufio.NewReader(dec)
		a.closers = append(a.closers, func() error {
			dec.Close()
			return nil
		})
	case ".bz2":
		dec, err := bzip2.NewReader(a.raw, nil)
		if err != nil {
			file.Close() //nolint:errcheck,gosec // G104: cleanup on error path
			return nil, errors.Wrapf(err, "opening bzip2 stream %s", path)
		}
		a.r = bufio.NewReader(dec)
		a.closers = append(a.closers, dec.Close)
	case ".pgn":
		a.r = bufio.NewReader(a.raw)
	default:
		file.Close() //nolint:errcheck,gosec // G104: cleanup on error path
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%s", path)
	}

	return a, nil
}

// Read reads from the decompressed game stream.
func (a *Archive) Read(p []byte) (int, error) {
	return a.r.Read(p)
}

// Close releases the archive's readers in reverse acquisition order.
func (a *Archive) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Size returns the on-disk archive size.
func (a *Archive) Size() bytesize.ByteSize {
	return bytesize.ByteSize(a.size)
}

// BytesRead returns the raw (compressed) bytes consumed so far.
func (a *Archive) BytesRead() bytesize.ByteSize {
	return bytesize.ByteSize(a.raw.bytesRead)
}

// Progress returns the fraction of the on-disk archive consumed, in [0, 1].
func (a *Archive) Progress() float64 {
	if a.size <= 0 {
		return 0
	}
	p := float64(a.raw.bytesRead) / float64(a.size)
	if p > 1 {
		p = 1
	}
	return p
}
