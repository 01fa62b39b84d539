package classpath

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/classmodel/classfile"
)

// jmodMagic opens every jmod file, ahead of the zip data.
var jmodMagic = []byte{'J', 'M', 0x01, 0x00}

// ArchiveLoader reads class files from a jar, zip or jmod archive. Entries
// in a jmod live under "classes/". It is safe for concurrent use.
type ArchiveLoader struct {
	path   string
	file   *os.File
	prefix string

	entries map[string]*zip.File
}

// OpenArchive opens the archive at path. The caller must Close it.
func OpenArchive(path string) (*ArchiveLoader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open archive")
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	l, err := newArchiveLoader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "open archive %s", path)
	}
	l.path = path
	l.file = f
	return l, nil
}

// NewArchiveLoader reads an archive held in memory.
func NewArchiveLoader(data []byte) (*ArchiveLoader, error) {
	return newArchiveLoader(bytes.NewReader(data), int64(len(data)))
}

func newArchiveLoader(r io.ReaderAt, size int64) (*ArchiveLoader, error) {
	var offset int64
	prefix := ""
	head := make([]byte, len(jmodMagic))
	if _, err := r.ReadAt(head, 0); err == nil && bytes.Equal(head, jmodMagic) {
		offset = int64(len(jmodMagic))
		prefix = "classes/"
	}
	zr, err := zip.NewReader(io.NewSectionReader(r, offset, size-offset), size-offset)
	if err != nil {
		return nil, errors.Wrap(err, "read zip directory")
	}
	l := &ArchiveLoader{prefix: prefix, entries: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		name, ok := strings.CutPrefix(f.Name, prefix)
		if !ok || !strings.HasSuffix(name, ".class") || f.FileInfo().IsDir() {
			continue
		}
		l.entries[strings.TrimSuffix(name, ".class")] = f
	}
	return l, nil
}

func (l *ArchiveLoader) Load(internalName string) (*classfile.ClassFile, error) {
	f, ok := l.entries[internalName]
	if !ok {
		return nil, notFound(internalName)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", f.Name)
	}
	defer rc.Close()
	cf, err := classfile.Parse(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s!%s", l.path, f.Name)
	}
	return cf, nil
}

// Names returns the internal names of every class in the archive.
func (l *ArchiveLoader) Names() []string {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	return names
}

func (l *ArchiveLoader) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
