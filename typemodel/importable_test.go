package typemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/classmodel/classfile"
	"github.com/dhamidi/classmodel/classpath"
)

func externalNames(types []Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.ExternalName()
	}
	return names
}

func libraryClasses() []*classfile.ClassFile {
	return []*classfile.ClassFile{
		build("org/lib/Api", pub|iface, nil),
		build("org/lib/Item", pub|classfile.AccSuper, nil),
		build("org/lib/Thing", pub|classfile.AccSuper, nil),
		build("org/lib/Worker", pub|classfile.AccSuper, nil),
		build("org/lib/Failure", pub|classfile.AccSuper, func(b *classfile.Builder) {
			b.SetSuper("java/lang/Exception")
		}),
		build("org/lib/Result", pub|classfile.AccSuper, nil),
		build("org/lib/Option", pub|classfile.AccSuper, nil),
		build("org/lib/Base", pub|abstract|classfile.AccSuper, nil),
		build("com/acme/Local", pub|classfile.AccSuper, nil),
		build("java/lang/System", pub|final|classfile.AccSuper, nil),
	}
}

func serviceClass() *classfile.ClassFile {
	return build("com/acme/Service", pub|classfile.AccSuper, func(b *classfile.Builder) {
		b.SetSuper("org/lib/Base")
		b.AddInterface("org/lib/Api")
		b.AddField(priv, "items", "Ljava/util/List;").Signature("Ljava/util/List<Lorg/lib/Item;>;")
		b.AddField(priv, "count", "I")
		b.AddField(priv, "local", "Lcom/acme/Local;")
		b.AddField(priv, "things", "[[Lorg/lib/Thing;")
		b.AddField(priv, "name", "Ljava/lang/String;")
		b.AddMethod(pub, "<init>", "(Lorg/lib/Option;)V")
		b.AddMethod(pub, "run", "()Lorg/lib/Result;").
			Exceptions("org/lib/Failure").
			Code(2, 1, func(c *classfile.CodeBuilder) {
				c.New("org/lib/Worker")
				c.Op(0x59) // dup
				c.InvokeSpecial("org/lib/Worker", "<init>", "()V")
				c.GetStatic("java/lang/System", "out", "Ljava/io/PrintStream;")
				c.Op(0x01, 0xb0) // aconst_null areturn
			})
	})
}

func TestImportableTypes(t *testing.T) {
	reg := newTestRegistry(t, append(libraryClasses(), serviceClass())...)
	svc, err := reg.ClassTypeByName("com.acme.Service")
	require.NoError(t, err)

	types, err := svc.ImportableTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"java.util.List",
		"org.lib.Api",
		"org.lib.Base",
		"org.lib.Failure",
		"org.lib.Item",
		"org.lib.Option",
		"org.lib.Result",
		"org.lib.Thing",
		"org.lib.Worker",
	}, externalNames(types))

	again, err := svc.ImportableTypes()
	require.NoError(t, err)
	assert.Equal(t, types, again)
}

func TestImportableTypesHonorsAlwaysAvailablePackage(t *testing.T) {
	types := func(opts ...Option) []string {
		classes := append(jdkClasses(), serviceClass())
		classes = append(classes, libraryClasses()...)
		reg, err := NewRegistry(classpath.NewMapLoader(classes...), opts...)
		require.NoError(t, err)
		svc, err := reg.ClassTypeByName("com.acme.Service")
		require.NoError(t, err)
		imported, err := svc.ImportableTypes()
		require.NoError(t, err)
		return externalNames(imported)
	}

	assert.NotContains(t, types(), "java.lang.String")
	withLang := types(WithAlwaysAvailablePackage("org.lib"))
	assert.Contains(t, withLang, "java.lang.String")
	assert.Contains(t, withLang, "java.lang.System")
	assert.NotContains(t, withLang, "org.lib.Api")
}

func TestImportableTypesOfInterface(t *testing.T) {
	api := build("org/lib/Api", pub|iface, nil)
	repo := build("com/acme/Repository", pub|iface, func(b *classfile.Builder) {
		b.SetSignature("<T:Ljava/lang/Object;>Ljava/lang/Object;Lorg/lib/Api;")
		b.AddInterface("org/lib/Api")
		b.AddMethod(pub|abstract, "all", "()Ljava/util/List;").Signature("()Ljava/util/List<TT;>;")
		b.AddMethod(pub|abstract, "count", "()J")
	})
	reg := newTestRegistry(t, api, repo)
	it, err := reg.InterfaceTypeByName("com.acme.Repository")
	require.NoError(t, err)

	types, err := it.ImportableTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"java.util.List", "org.lib.Api"}, externalNames(types))
}

func TestImportableTypesMissingClass(t *testing.T) {
	reg := newTestRegistry(t, serviceClass())
	svc, err := reg.ClassTypeByName("com.acme.Service")
	require.NoError(t, err)

	_, err = svc.ImportableTypes()
	assert.Error(t, err)
}
