// Package typemodel serves a lazily materialized, queryable model of the
// types defined by JVM class files.
//
// A Registry owns one name-keyed cache per type variant, so every request
// for the type named X yields the same instance until the cache is cleared.
// Derived facts (members, modifiers, supertypes, importable types) are
// computed on first access and frozen.
package typemodel

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dhamidi/classmodel/classfile"
	"github.com/dhamidi/classmodel/classpath"
)

// DefaultAlwaysAvailablePackage is the package whose types never need an
// import.
const DefaultAlwaysAvailablePackage = "java.lang"

// cache is a get-or-create map. Concurrent creators of one key share a
// single factory call and at most one value is stored. Failed factories
// store nothing.
type cache[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	group singleflight.Group
}

func (c *cache[T]) lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *cache[T]) getOrCreate(key string, create func() (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := create()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if existing, ok := c.items[key]; ok {
			return existing, nil
		}
		if c.items == nil {
			c.items = make(map[string]T)
		}
		c.items[key] = v
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *cache[T]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *cache[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Registry resolves names and class files to shared Type instances.
// All methods are safe for concurrent use, except that ClearCache and
// ClearAll must not race with readers of the variants they clear.
type Registry struct {
	loader          classpath.Loader
	log             *zap.SugaredLogger
	alwaysAvailable string

	handles     cache[*classfile.ClassFile]
	classes     cache[*ClassType]
	interfaces  cache[*InterfaceType]
	enums       cache[*EnumType]
	annotations cache[*AnnotationType]
	arrays      cache[*ArrayType]
}

type Option func(*Registry)

// WithLogger sets the logger for diagnostics. The default discards
// everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log.Named("typemodel")
		}
	}
}

// WithAlwaysAvailablePackage sets the package, in dotted form, whose types
// are left out of importable type lists.
func WithAlwaysAvailablePackage(pkg string) Option {
	return func(r *Registry) {
		r.alwaysAvailable = pkg
	}
}

func NewRegistry(loader classpath.Loader, opts ...Option) (*Registry, error) {
	if loader == nil {
		return nil, nilArgument("NewRegistry", "loader")
	}
	r := &Registry{
		loader:          loader,
		log:             zap.NewNop().Sugar(),
		alwaysAvailable: DefaultAlwaysAvailablePackage,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// AlwaysAvailablePackage reports the package excluded from importable
// type lists.
func (r *Registry) AlwaysAvailablePackage() string {
	return r.alwaysAvailable
}

// Handle returns the class file for an internal name, loading it on first
// use.
func (r *Registry) Handle(internalName string) (*classfile.ClassFile, error) {
	return r.handles.getOrCreate(internalName, func() (*classfile.ClassFile, error) {
		cf, err := r.loader.Load(internalName)
		if err != nil {
			return nil, typeError("Handle", internalName, err)
		}
		r.log.Debugw("Loaded class file", "name", internalName)
		return cf, nil
	})
}

// adopt records cf as the handle for its name unless one is cached
// already, and returns the cached handle.
func (r *Registry) adopt(cf *classfile.ClassFile) *classfile.ClassFile {
	cached, _ := r.handles.getOrCreate(cf.ClassName(), func() (*classfile.ClassFile, error) {
		return cf, nil
	})
	return cached
}

// handleByName loads the class file for a dotted or internal name. A
// dotted name that is not found is retried with its trailing segments
// joined by '$', so "java.util.Map.Entry" finds java/util/Map$Entry.
func (r *Registry) handleByName(op, name string) (*classfile.ClassFile, error) {
	if name == "" {
		return nil, typeError(op, name, errors.New("empty name"))
	}
	dotted := !strings.Contains(name, "/")
	internal := toInternalName(name)
	cf, err := r.Handle(internal)
	if err == nil || !dotted || !errors.Is(err, classpath.ErrClassNotFound) {
		return cf, err
	}
	for candidate := internal; ; {
		i := strings.LastIndexByte(candidate, '/')
		if i < 0 {
			return nil, err
		}
		candidate = candidate[:i] + "$" + candidate[i+1:]
		nested, nerr := r.Handle(candidate)
		if nerr == nil {
			return nested, nil
		}
		if !errors.Is(nerr, classpath.ErrClassNotFound) {
			return nil, nerr
		}
	}
}

func toInternalName(name string) string {
	if strings.HasPrefix(name, "L") && strings.HasSuffix(name, ";") {
		name = name[1 : len(name)-1]
	}
	if strings.Contains(name, "/") {
		return name
	}
	return classfile.SourceToInternalName(name)
}

// classify reports the variant a class file belongs to. Module
// descriptors belong to none.
func classify(cf *classfile.ClassFile) (Kind, bool) {
	switch {
	case cf.IsModule():
		return 0, false
	case cf.IsAnnotation():
		return KindAnnotation, true
	case cf.IsEnum():
		return KindEnum, true
	case cf.IsInterface():
		return KindInterface, true
	}
	return KindClass, true
}

func checkKind(op string, cf *classfile.ClassFile, want Kind) error {
	got, ok := classify(cf)
	if !ok {
		return typeError(op, cf.ClassName(), errors.Wrap(ErrWrongKind, "module descriptor"))
	}
	if got != want {
		return wrongKind(op, classfile.InternalToSourceName(cf.ClassName()), got)
	}
	return nil
}

// TypeOf returns the type described by cf, dispatching on its
// classification.
func (r *Registry) TypeOf(cf *classfile.ClassFile) (Type, error) {
	if cf == nil {
		return nil, nilArgument("TypeOf", "class file")
	}
	kind, ok := classify(cf)
	if !ok {
		return nil, typeError("TypeOf", cf.ClassName(), errors.Wrap(ErrWrongKind, "module descriptor"))
	}
	switch kind {
	case KindAnnotation:
		return r.AnnotationType(cf)
	case KindEnum:
		return r.EnumType(cf)
	case KindInterface:
		return r.InterfaceType(cf)
	}
	return r.ClassType(cf)
}

// TypeByName resolves a name to its type. Primitive and void tokens are
// recognized in source and descriptor spelling ("int" or "I"), as are
// array names ("java.lang.String[]" or "[Ljava/lang/String;"). Anything
// else is loaded through the classpath.
func (r *Registry) TypeByName(name string) (Type, error) {
	if name == "void" || name == "V" {
		return Void, nil
	}
	if p, ok := primitiveByToken(name); ok {
		return p, nil
	}
	if strings.HasPrefix(name, "[") || strings.HasSuffix(name, "[]") {
		return r.ArrayTypeByName(name)
	}
	cf, err := r.handleByName("TypeByName", name)
	if err != nil {
		return nil, err
	}
	return r.TypeOf(cf)
}

// typeOfClassName resolves a class name as recorded in a class file.
// Primitive tokens are not recognized, so a default-package class named
// "I" stays a class.
func (r *Registry) typeOfClassName(op, name string) (Type, error) {
	if strings.HasPrefix(name, "[") {
		return r.TypeOfDescriptor(name)
	}
	cf, err := r.handleByName(op, name)
	if err != nil {
		return nil, err
	}
	return r.TypeOf(cf)
}

// TypeOfDescriptor resolves a field descriptor such as "[Ljava/util/List;"
// to its type.
func (r *Registry) TypeOfDescriptor(descriptor string) (Type, error) {
	ft, err := classfile.ParseFieldDescriptor(descriptor)
	if err != nil {
		return nil, typeError("TypeOfDescriptor", descriptor, err)
	}
	return r.typeOfFieldType(ft)
}

func (r *Registry) typeOfFieldType(ft *classfile.FieldType) (Type, error) {
	var elem Type
	if ft.BaseType != "" {
		p, ok := primitiveByToken(ft.BaseType)
		if !ok {
			return nil, typeError("TypeOfDescriptor", ft.Descriptor(), errors.Wrap(ErrWrongKind, "unknown base type"))
		}
		elem = p
	} else {
		t, err := r.typeOfClassName("TypeOfDescriptor", ft.ClassName)
		if err != nil {
			return nil, err
		}
		elem = t
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		arr, err := r.ArrayOf(elem)
		if err != nil {
			return nil, err
		}
		elem = arr
	}
	return elem, nil
}

func (r *Registry) ClassType(cf *classfile.ClassFile) (*ClassType, error) {
	if cf == nil {
		return nil, nilArgument("ClassType", "class file")
	}
	if err := checkKind("ClassType", cf, KindClass); err != nil {
		return nil, err
	}
	return r.classes.getOrCreate(cf.ClassName(), func() (*ClassType, error) {
		t := newClassType(r, r.adopt(cf))
		r.log.Debugw("Created type", "kind", KindClass, "name", t.ExternalName())
		return t, nil
	})
}

func (r *Registry) ClassTypeByName(name string) (*ClassType, error) {
	cf, err := r.handleByName("ClassTypeByName", name)
	if err != nil {
		return nil, err
	}
	return r.ClassType(cf)
}

func (r *Registry) InterfaceType(cf *classfile.ClassFile) (*InterfaceType, error) {
	if cf == nil {
		return nil, nilArgument("InterfaceType", "class file")
	}
	if err := checkKind("InterfaceType", cf, KindInterface); err != nil {
		return nil, err
	}
	return r.interfaces.getOrCreate(cf.ClassName(), func() (*InterfaceType, error) {
		t := newInterfaceType(r, r.adopt(cf))
		r.log.Debugw("Created type", "kind", KindInterface, "name", t.ExternalName())
		return t, nil
	})
}

func (r *Registry) InterfaceTypeByName(name string) (*InterfaceType, error) {
	cf, err := r.handleByName("InterfaceTypeByName", name)
	if err != nil {
		return nil, err
	}
	return r.InterfaceType(cf)
}

func (r *Registry) EnumType(cf *classfile.ClassFile) (*EnumType, error) {
	if cf == nil {
		return nil, nilArgument("EnumType", "class file")
	}
	if err := checkKind("EnumType", cf, KindEnum); err != nil {
		return nil, err
	}
	return r.enums.getOrCreate(cf.ClassName(), func() (*EnumType, error) {
		t := newEnumType(r, r.adopt(cf))
		r.log.Debugw("Created type", "kind", KindEnum, "name", t.ExternalName())
		return t, nil
	})
}

func (r *Registry) EnumTypeByName(name string) (*EnumType, error) {
	cf, err := r.handleByName("EnumTypeByName", name)
	if err != nil {
		return nil, err
	}
	return r.EnumType(cf)
}

func (r *Registry) AnnotationType(cf *classfile.ClassFile) (*AnnotationType, error) {
	if cf == nil {
		return nil, nilArgument("AnnotationType", "class file")
	}
	if err := checkKind("AnnotationType", cf, KindAnnotation); err != nil {
		return nil, err
	}
	return r.annotations.getOrCreate(cf.ClassName(), func() (*AnnotationType, error) {
		t := newAnnotationType(r, r.adopt(cf))
		r.log.Debugw("Created type", "kind", KindAnnotation, "name", t.ExternalName())
		return t, nil
	})
}

func (r *Registry) AnnotationTypeByName(name string) (*AnnotationType, error) {
	cf, err := r.handleByName("AnnotationTypeByName", name)
	if err != nil {
		return nil, err
	}
	return r.AnnotationType(cf)
}

// ArrayOf returns the one-dimension-deeper array of component.
func (r *Registry) ArrayOf(component Type) (*ArrayType, error) {
	if component == nil {
		return nil, nilArgument("ArrayOf", "component type")
	}
	if component.Kind() == KindVoid {
		return nil, wrongKind("ArrayOf", component.ExternalName(), KindVoid)
	}
	key := component.ExternalName() + "[]"
	return r.arrays.getOrCreate(key, func() (*ArrayType, error) {
		return newArrayType(component), nil
	})
}

// ArrayTypeByName resolves "[[I", "int[][]", "[Ljava/lang/String;" or
// "java.lang.String[]".
func (r *Registry) ArrayTypeByName(name string) (*ArrayType, error) {
	var t Type
	var err error
	if strings.HasPrefix(name, "[") {
		t, err = r.TypeOfDescriptor(name)
	} else {
		base := strings.TrimRight(name, "[]")
		dims := (len(name) - len(base)) / 2
		if dims == 0 || base+strings.Repeat("[]", dims) != name {
			return nil, wrongKind("ArrayTypeByName", name, KindClass)
		}
		if t, err = r.TypeByName(base); err == nil {
			for i := 0; i < dims && err == nil; i++ {
				t, err = r.ArrayOf(t)
			}
		}
	}
	if err != nil {
		return nil, err
	}
	arr, ok := t.(*ArrayType)
	if !ok {
		return nil, wrongKind("ArrayTypeByName", name, t.Kind())
	}
	return arr, nil
}

// ClearCache drops every cached instance of kind together with the class
// file cache. Clearing a declared kind also drops the array cache, since
// cached arrays hold their component instances. Primitive and void types
// are fixed singletons and are not affected.
func (r *Registry) ClearCache(kind Kind) {
	switch kind {
	case KindClass:
		r.classes.clear()
	case KindInterface:
		r.interfaces.clear()
	case KindEnum:
		r.enums.clear()
	case KindAnnotation:
		r.annotations.clear()
	case KindArray:
	default:
		return
	}
	r.arrays.clear()
	r.handles.clear()
	r.log.Debugw("Cleared cache", "kind", kind)
}

// ClearAll drops every cache.
func (r *Registry) ClearAll() {
	r.classes.clear()
	r.interfaces.clear()
	r.enums.clear()
	r.annotations.clear()
	r.arrays.clear()
	r.handles.clear()
	r.log.Debugw("Cleared all caches")
}

// CacheLen reports how many instances of kind are cached.
func (r *Registry) CacheLen(kind Kind) int {
	switch kind {
	case KindClass:
		return r.classes.len()
	case KindInterface:
		return r.interfaces.len()
	case KindEnum:
		return r.enums.len()
	case KindAnnotation:
		return r.annotations.len()
	case KindArray:
		return r.arrays.len()
	}
	return 0
}
