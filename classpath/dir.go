package classpath

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/classmodel/classfile"
)

// DirLoader reads class files laid out by package under a root directory,
// as javac -d writes them.
type DirLoader struct {
	root string
}

func NewDirLoader(root string) *DirLoader {
	return &DirLoader{root: root}
}

func (l *DirLoader) Load(internalName string) (*classfile.ClassFile, error) {
	if !fs.ValidPath(internalName) {
		return nil, notFound(internalName)
	}
	path := filepath.Join(l.root, filepath.FromSlash(internalName)+".class")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(internalName)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	cf, err := classfile.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return cf, nil
}
