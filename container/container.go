// Package container ties the byte reader, directory parser, and resource
// dispatcher together into a single handle over one IXF/DAT/BLD/SC3/ST3/
// SCT/CFG file.
package container

import (
	"io"
	"os"

	"github.com/gosc3k/ixfkit/byteio"
	"github.com/gosc3k/ixfkit/directory"
	"github.com/gosc3k/ixfkit/format"
	"github.com/gosc3k/ixfkit/resource"
)

// Container is a single-threaded, synchronous handle over one container
// file: its directory has already been parsed in full by the time Open or
// OpenReader returns. Two calls against the same Container are not safe
// to interleave.
type Container struct {
	r       *byteio.Reader
	entries []directory.Entry
}

// Open opens the file at path and parses its directory.
func Open(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	c, err := OpenReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return c, nil
}

// OpenReader wraps an already-open seekable source and parses its
// directory. Ownership of src passes to the returned Container: closing
// it closes src if src implements io.Closer.
func OpenReader(src io.ReadSeeker) (*Container, error) {
	r, err := byteio.NewReader(src)
	if err != nil {
		return nil, err
	}

	entries, err := directory.Parse(r)
	if err != nil {
		r.Close()
		return nil, err
	}

	return &Container{r: r, entries: entries}, nil
}

// Entries returns the container's live directory entries in on-disk
// order.
func (c *Container) Entries() []directory.Entry {
	return c.entries
}

// Extract reads entry's payload and runs it through the resource
// dispatcher, returning the bytes that should be written to disk along
// with the entry's resource-type tag.
func (c *Container) Extract(e directory.Entry) ([]byte, format.TypeTag, error) {
	if err := c.r.Seek(int64(e.Offset)); err != nil {
		return nil, 0, err
	}

	payload := make([]byte, e.Length)
	if e.Length > 0 {
		if err := c.r.ReadFull(payload); err != nil {
			return nil, 0, err
		}
	}

	return resource.Dispatch(e, payload)
}

// Close releases the underlying reader, and with it the source passed to
// Open or OpenReader.
func (c *Container) Close() error {
	return c.r.Close()
}
