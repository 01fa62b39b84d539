package typemodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/classmodel/classfile"
	"github.com/dhamidi/classmodel/classpath"
)

const (
	pub      = classfile.AccPublic
	priv     = classfile.AccPrivate
	prot     = classfile.AccProtected
	static   = classfile.AccStatic
	final    = classfile.AccFinal
	abstract = classfile.AccAbstract
	iface    = classfile.AccInterface | classfile.AccAbstract
)

func build(name string, flags classfile.AccessFlags, fn func(b *classfile.Builder)) *classfile.ClassFile {
	b := classfile.NewBuilder(name, flags)
	if fn != nil {
		fn(b)
	}
	return b.MustBuild()
}

// jdkClasses is the slice of the platform every test registry starts from.
func jdkClasses() []*classfile.ClassFile {
	return []*classfile.ClassFile{
		build("java/lang/Object", pub|classfile.AccSuper, func(b *classfile.Builder) {
			b.AddMethod(pub, "<init>", "()V")
			b.AddMethod(pub, "toString", "()Ljava/lang/String;")
			b.AddMethod(pub, "hashCode", "()I")
			b.AddMethod(pub, "equals", "(Ljava/lang/Object;)Z")
		}),
		build("java/lang/Comparable", pub|iface, func(b *classfile.Builder) {
			b.SetSignature("<T:Ljava/lang/Object;>Ljava/lang/Object;")
			b.AddMethod(pub|abstract, "compareTo", "(Ljava/lang/Object;)I").Signature("(TT;)I")
		}),
		build("java/lang/String", pub|final|classfile.AccSuper, func(b *classfile.Builder) {
			b.AddInterface("java/lang/Comparable")
			b.AddMethod(pub, "length", "()I")
		}),
		build("java/lang/Exception", pub|classfile.AccSuper, nil),
		build("java/util/List", pub|iface, func(b *classfile.Builder) {
			b.SetSignature("<E:Ljava/lang/Object;>Ljava/lang/Object;")
			b.AddMethod(pub|abstract, "size", "()I")
		}),
	}
}

func newTestRegistry(t *testing.T, classes ...*classfile.ClassFile) *Registry {
	t.Helper()
	loader := classpath.NewMapLoader(jdkClasses()...)
	for _, cf := range classes {
		loader.Add(cf)
	}
	reg, err := NewRegistry(loader)
	require.NoError(t, err)
	return reg
}

// personClass declares its constructors out of order so that sorting has
// work to do.
func personClass() *classfile.ClassFile {
	return build("com/acme/Person", pub|classfile.AccSuper, func(b *classfile.Builder) {
		b.AddInterface("java/lang/Comparable")
		b.SetSignature("Ljava/lang/Object;Ljava/lang/Comparable<Lcom/acme/Person;>;")
		b.SetSourceFile("Person.java")
		b.AddField(priv, "firstName", "Ljava/lang/String;")
		b.AddField(priv, "lastName", "Ljava/lang/String;")
		b.AddField(priv, "age", "I")
		b.AddMethod(pub, "<init>", "(Ljava/lang/String;Ljava/lang/String;I)V").
			Parameters(classfile.Param{Name: "firstName", AccessFlags: final}, classfile.Param{Name: "lastName"}, classfile.Param{Name: "age"})
		b.AddMethod(pub, "<init>", "(Ljava/lang/String;)V").Code(2, 2, func(c *classfile.CodeBuilder) {
			c.Op(0xb1)
			c.LocalVariable(0, "this", "Lcom/acme/Person;")
			c.LocalVariable(1, "firstName", "Ljava/lang/String;")
		})
		b.AddMethod(pub, "<init>", "()V")
		b.AddMethod(pub, "<init>", "(Ljava/lang/String;Ljava/lang/String;)V")
		b.AddMethod(pub, "getAge", "()I")
		b.AddMethod(pub, "compareTo", "(Lcom/acme/Person;)I")
		b.AddMethod(pub|classfile.AccBridge|classfile.AccSynthetic, "compareTo", "(Ljava/lang/Object;)I")
	})
}
