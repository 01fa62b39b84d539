package typemodel

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/classmodel/classfile"
)

func greeterClasses() []*classfile.ClassFile {
	return []*classfile.ClassFile{
		build("com/acme/Named", pub|iface, func(b *classfile.Builder) {
			b.AddMethod(pub|abstract, "name", "()Ljava/lang/String;")
		}),
		build("com/acme/Greeter", pub|iface, func(b *classfile.Builder) {
			b.AddInterface("com/acme/Named")
			b.AddMethod(pub|abstract, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
		}),
		build("com/acme/Hello", pub|classfile.AccSuper, func(b *classfile.Builder) {
			b.AddInterface("com/acme/Greeter")
			b.AddMethod(pub, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
			b.AddMethod(pub, "name", "()Ljava/lang/String;")
			b.AddMethod(pub, "helper", "()V")
			b.AddMethod(pub, "toString", "()Ljava/lang/String;")
		}),
		build("com/acme/LoudHello", pub|classfile.AccSuper, func(b *classfile.Builder) {
			b.SetSuper("com/acme/Hello")
			b.AddMethod(pub, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
			b.AddMethod(pub, "greet", "(Ljava/lang/String;I)Ljava/lang/String;")
		}),
	}
}

func methodNamed(t *testing.T, methods []*Method, name, descriptor string) *Method {
	t.Helper()
	for _, m := range methods {
		if m.Name() == name && m.Descriptor() == descriptor {
			return m
		}
	}
	t.Fatalf("no method %s%s", name, descriptor)
	return nil
}

func TestHasMethodOverridden(t *testing.T) {
	reg := newTestRegistry(t, greeterClasses()...)
	hello, err := reg.ClassTypeByName("com.acme.Hello")
	require.NoError(t, err)
	methods, err := hello.Methods()
	require.NoError(t, err)

	tests := []struct {
		name       string
		descriptor string
		overridden bool
	}{
		{"greet", "(Ljava/lang/String;)Ljava/lang/String;", true},
		{"name", "()Ljava/lang/String;", true},
		{"toString", "()Ljava/lang/String;", true},
		{"helper", "()V", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := methodNamed(t, methods, tt.name, tt.descriptor)
			declares, err := hello.HasMethod(m)
			require.NoError(t, err)
			assert.True(t, declares)

			overridden, err := hello.HasMethodOverridden(m)
			require.NoError(t, err)
			assert.Equal(t, tt.overridden, overridden)
		})
	}
}

func TestHasMethodInheritedThroughSuperclass(t *testing.T) {
	reg := newTestRegistry(t, greeterClasses()...)
	loud, err := reg.ClassTypeByName("com.acme.LoudHello")
	require.NoError(t, err)
	methods, err := loud.Methods()
	require.NoError(t, err)

	greet := methodNamed(t, methods, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
	overridden, err := loud.HasMethodOverridden(greet)
	require.NoError(t, err)
	assert.True(t, overridden)

	overload := methodNamed(t, methods, "greet", "(Ljava/lang/String;I)Ljava/lang/String;")
	overridden, err = loud.HasMethodOverridden(overload)
	require.NoError(t, err)
	assert.False(t, overridden, "an overload is not an override")

	// A method from elsewhere can be checked against any type.
	hello, err := reg.ClassTypeByName("com.acme.Hello")
	require.NoError(t, err)
	helloMethods, err := hello.Methods()
	require.NoError(t, err)
	helper := methodNamed(t, helloMethods, "helper", "()V")
	inherited, err := loud.HasMethodInherited(helper)
	require.NoError(t, err)
	assert.True(t, inherited)
	declares, err := loud.HasMethod(helper)
	require.NoError(t, err)
	assert.False(t, declares)
	overridden, err = loud.HasMethodOverridden(helper)
	require.NoError(t, err)
	assert.False(t, overridden)
}

func TestSignatureEquality(t *testing.T) {
	reg := newTestRegistry(t, greeterClasses()...)
	hello, err := reg.ClassTypeByName("com.acme.Hello")
	require.NoError(t, err)
	greeter, err := reg.InterfaceTypeByName("com.acme.Greeter")
	require.NoError(t, err)

	hm, err := hello.Methods()
	require.NoError(t, err)
	gm, err := greeter.Methods()
	require.NoError(t, err)

	a := methodNamed(t, hm, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
	b := methodNamed(t, gm, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
	assert.True(t, a.IsSignatureEqualTo(b))
	assert.True(t, b.IsSignatureEqualTo(a))
	assert.False(t, a.IsSignatureEqualTo(nil))
	assert.False(t, a.IsSignatureEqualTo(methodNamed(t, hm, "name", "()Ljava/lang/String;")))
}

func TestInheritanceCycle(t *testing.T) {
	a := build("com/acme/A", pub|classfile.AccSuper, func(b *classfile.Builder) {
		b.SetSuper("com/acme/B")
		b.AddMethod(pub, "run", "()V")
	})
	b := build("com/acme/B", pub|classfile.AccSuper, func(b *classfile.Builder) {
		b.SetSuper("com/acme/A")
	})
	reg := newTestRegistry(t, a, b)

	at, err := reg.ClassTypeByName("com.acme.A")
	require.NoError(t, err)
	methods, err := at.Methods()
	require.NoError(t, err)

	_, err = at.HasMethodOverridden(methods[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
	var te *TypeError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "HasMethodInherited", te.Op)
}

func TestDiamondIsNotACycle(t *testing.T) {
	classes := []*classfile.ClassFile{
		build("com/acme/Root", pub|iface, func(b *classfile.Builder) {
			b.AddMethod(pub|abstract, "id", "()I")
		}),
		build("com/acme/Left", pub|iface, func(b *classfile.Builder) {
			b.AddInterface("com/acme/Root")
		}),
		build("com/acme/Right", pub|iface, func(b *classfile.Builder) {
			b.AddInterface("com/acme/Root")
		}),
		build("com/acme/Both", pub|classfile.AccSuper, func(b *classfile.Builder) {
			b.AddInterface("com/acme/Left", "com/acme/Right")
			b.AddMethod(pub, "other", "()V")
		}),
	}
	reg := newTestRegistry(t, classes...)
	both, err := reg.ClassTypeByName("com.acme.Both")
	require.NoError(t, err)
	methods, err := both.Methods()
	require.NoError(t, err)

	inherited, err := both.HasMethodInherited(methods[0])
	require.NoError(t, err)
	assert.False(t, inherited)
}

func TestInheritanceNilMethod(t *testing.T) {
	reg := newTestRegistry(t, greeterClasses()...)
	hello, err := reg.ClassTypeByName("com.acme.Hello")
	require.NoError(t, err)

	for name, check := range map[string]func(*Method) (bool, error){
		"HasMethod":           hello.HasMethod,
		"HasMethodInherited":  hello.HasMethodInherited,
		"HasMethodOverridden": hello.HasMethodOverridden,
	} {
		t.Run(name, func(t *testing.T) {
			found, err := check(nil)
			assert.False(t, found)
			assert.ErrorIs(t, err, ErrNilArgument)
		})
	}
}
