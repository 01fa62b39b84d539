// Package classpath maps internal class names such as "java/util/List" to
// decoded class files.
package classpath

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/classmodel/classfile"
)

// ErrClassNotFound is wrapped by every loader when no entry exists for the
// requested name.
var ErrClassNotFound = errors.New("class not found")

// Loader resolves an internal class name to its decoded class file.
type Loader interface {
	Load(internalName string) (*classfile.ClassFile, error)
}

func notFound(internalName string) error {
	return errors.Wrapf(ErrClassNotFound, "%s", internalName)
}

// MapLoader serves class files held in memory. It is safe for concurrent
// use.
type MapLoader struct {
	mu      sync.RWMutex
	classes map[string]*classfile.ClassFile
}

func NewMapLoader(classes ...*classfile.ClassFile) *MapLoader {
	l := &MapLoader{classes: make(map[string]*classfile.ClassFile)}
	for _, cf := range classes {
		l.Add(cf)
	}
	return l
}

// Add registers cf under its own class name, replacing any earlier entry.
func (l *MapLoader) Add(cf *classfile.ClassFile) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.classes[cf.ClassName()] = cf
}

func (l *MapLoader) Load(internalName string) (*classfile.ClassFile, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if cf, ok := l.classes[internalName]; ok {
		return cf, nil
	}
	return nil, notFound(internalName)
}

// Names returns the registered class names in no particular order.
func (l *MapLoader) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.classes))
	for name := range l.classes {
		names = append(names, name)
	}
	return names
}

// Chain asks each loader in turn. The first loader that finds the class
// wins; an error other than ErrClassNotFound ends the search.
type Chain struct {
	loaders []Loader
}

func NewChain(loaders ...Loader) *Chain {
	return &Chain{loaders: loaders}
}

func (c *Chain) Load(internalName string) (*classfile.ClassFile, error) {
	for _, l := range c.loaders {
		cf, err := l.Load(internalName)
		if err == nil {
			return cf, nil
		}
		if !errors.Is(err, ErrClassNotFound) {
			return nil, err
		}
	}
	return nil, notFound(internalName)
}

// Close closes every loader in the chain that holds open resources.
func (c *Chain) Close() error {
	var errs []error
	for _, l := range c.loaders {
		if closer, ok := l.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Open builds a chain from classpath entries. Directories become
// DirLoaders; .jar, .zip and .jmod files become ArchiveLoaders. Archives
// opened before a failure are closed again.
func Open(entries []string) (*Chain, error) {
	chain := &Chain{}
	for _, entry := range entries {
		l, err := openEntry(entry)
		if err != nil {
			chain.Close()
			return nil, err
		}
		chain.loaders = append(chain.loaders, l)
	}
	return chain, nil
}

func openEntry(entry string) (Loader, error) {
	info, err := os.Stat(entry)
	if err != nil {
		return nil, errors.Wrapf(err, "classpath entry %s", entry)
	}
	if info.IsDir() {
		return NewDirLoader(entry), nil
	}
	switch strings.ToLower(filepath.Ext(entry)) {
	case ".jar", ".zip", ".jmod":
		return OpenArchive(entry)
	}
	return nil, errors.Newf("classpath entry %s: unsupported file type", entry)
}

// SplitPath splits an OS path list such as "lib/a.jar:build/classes" and
// drops empty elements.
func SplitPath(path string) []string {
	var entries []string
	for _, e := range filepath.SplitList(path) {
		if e = strings.TrimSpace(e); e != "" {
			entries = append(entries, e)
		}
	}
	return entries
}
