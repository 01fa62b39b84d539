package classfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestClass(t *testing.T) *ClassFile {
	t.Helper()
	b := NewBuilder("testdata/TestClass", AccPublic|AccSuper)
	b.AddInterface("java/lang/Runnable")
	b.SetSourceFile("TestClass.java")
	b.SetSignature("Ljava/lang/Object;Ljava/lang/Runnable;")
	b.AddField(AccPublic|AccStatic|AccFinal, "CONSTANT_VALUE", "I").ConstantValue(42)
	b.AddField(AccPublic|AccStatic|AccFinal, "GREETING", "Ljava/lang/String;").ConstantValue("héllo 𝄞")
	b.AddField(AccPrivate|AccStatic|AccFinal, "BIG", "J").ConstantValue(int64(1) << 40)
	b.AddField(AccPrivate|AccStatic|AccFinal, "RATIO", "D").ConstantValue(0.5)
	b.AddField(AccPrivate, "name", "Ljava/lang/String;")
	b.AddField(AccProtected, "count", "I")
	b.AddMethod(AccPublic, "<init>", "()V").Code(1, 1, func(c *CodeBuilder) {
		c.Op(0x2a).InvokeSpecial("java/lang/Object", "<init>", "()V").Op(0xb1)
	})
	b.AddMethod(AccPublic, "run", "()V").
		Exceptions("java/lang/IllegalStateException").
		Code(2, 1, func(c *CodeBuilder) {
			c.GetStatic("java/lang/System", "out", "Ljava/io/PrintStream;")
			c.Op(0x2a).GetField("testdata/TestClass", "name", "Ljava/lang/String;")
			c.InvokeVirtual("java/io/PrintStream", "println", "(Ljava/lang/String;)V")
			c.Op(0xb1)
			c.LocalVariable(0, "this", "Ltestdata/TestClass;")
		})
	b.AddMethod(AccPublic|AccStatic, "add", "(IJ)J").
		Parameters(Param{Name: "a", AccessFlags: AccFinal}, Param{Name: "b"})
	b.AddInnerClass("testdata/TestClass$Inner", "testdata/TestClass", "Inner", AccPublic|AccStatic)
	return b.MustBuild()
}

func roundTrip(t *testing.T, cf *ClassFile) *ClassFile {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, cf))
	parsed, err := Parse(&buf)
	require.NoError(t, err)
	return parsed
}

func TestParseClassFile(t *testing.T) {
	cf := roundTrip(t, buildTestClass(t))

	t.Run("class name", func(t *testing.T) {
		assert.Equal(t, "testdata/TestClass", cf.ClassName())
		assert.Equal(t, "java/lang/Object", cf.SuperClassName())
		assert.Equal(t, []string{"java/lang/Runnable"}, cf.InterfaceNames())
		assert.Equal(t, "TestClass.java", cf.SourceFile())
		assert.Equal(t, "Ljava/lang/Object;Ljava/lang/Runnable;", cf.Signature())
	})

	t.Run("classification", func(t *testing.T) {
		assert.True(t, cf.IsClass())
		assert.False(t, cf.IsInterface())
		assert.False(t, cf.IsEnum())
		assert.False(t, cf.IsAnnotation())
		assert.True(t, cf.AccessFlags.IsPublic())
		assert.False(t, cf.AccessFlags.IsFinal())
	})

	t.Run("fields", func(t *testing.T) {
		require.Len(t, cf.Fields, 6)

		f := cf.GetField("CONSTANT_VALUE")
		require.NotNil(t, f)
		assert.True(t, f.AccessFlags.Has(AccPublic|AccStatic|AccFinal))
		assert.Equal(t, "I", f.Descriptor(cf.ConstantPool))
		idx, ok := f.ConstantValueIndex(cf.ConstantPool)
		require.True(t, ok)
		v, ok := cf.ConstantPool.GetInteger(idx)
		require.True(t, ok)
		assert.Equal(t, int32(42), v)

		idx, ok = cf.GetField("GREETING").ConstantValueIndex(cf.ConstantPool)
		require.True(t, ok)
		s, ok := cf.ConstantPool.GetString(idx)
		require.True(t, ok)
		assert.Equal(t, "héllo 𝄞", s)

		idx, _ = cf.GetField("BIG").ConstantValueIndex(cf.ConstantPool)
		l, ok := cf.ConstantPool.GetLong(idx)
		require.True(t, ok)
		assert.Equal(t, int64(1)<<40, l)

		idx, _ = cf.GetField("RATIO").ConstantValueIndex(cf.ConstantPool)
		d, ok := cf.ConstantPool.GetDouble(idx)
		require.True(t, ok)
		assert.Equal(t, 0.5, d)

		_, ok = cf.GetField("name").ConstantValueIndex(cf.ConstantPool)
		assert.False(t, ok)
		assert.True(t, cf.GetField("count").AccessFlags.IsProtected())
	})

	t.Run("methods", func(t *testing.T) {
		require.Len(t, cf.Methods, 3)
		assert.True(t, cf.Methods[0].IsConstructor(cf.ConstantPool))

		run := cf.GetMethod("run", "()V")
		require.NotNil(t, run)
		assert.Equal(t, []string{"java/lang/IllegalStateException"}, run.ExceptionClassNames(cf.ConstantPool))
		name, ok := run.LocalVariableName(cf.ConstantPool, 0)
		require.True(t, ok)
		assert.Equal(t, "this", name)

		add := cf.GetMethod("add", "")
		require.NotNil(t, add)
		params, ok := add.MethodParameters(cf.ConstantPool)
		require.True(t, ok)
		assert.Equal(t, []Param{{Name: "a", AccessFlags: AccFinal}, {Name: "b"}}, params)
		_, ok = run.MethodParameters(cf.ConstantPool)
		assert.False(t, ok)
	})

	t.Run("inner classes", func(t *testing.T) {
		inner, ok := cf.InnerClassEntry("testdata/TestClass$Inner")
		require.True(t, ok)
		assert.Equal(t, "testdata/TestClass", inner.OuterClass)
		assert.Equal(t, "Inner", inner.InnerName)
		assert.True(t, inner.AccessFlags.IsStatic())

		_, ok = cf.InnerClassEntry("testdata/Missing")
		assert.False(t, ok)
	})

	t.Run("code references", func(t *testing.T) {
		code := cf.GetMethod("run", "()V").GetCodeAttribute(cf.ConstantPool)
		require.NotNil(t, code)
		names, err := code.ReferencedClassNames(cf.ConstantPool)
		require.NoError(t, err)
		assert.Equal(t, []string{"java/lang/System", "testdata/TestClass", "java/io/PrintStream"}, names)
	})
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", []byte{0xDE, 0xAD, 0xBE, 0xEF, 0, 0, 0, 61}},
		{"truncated pool", []byte{0xCA, 0xFE, 0xBA, 0xBE, 0, 0, 0, 61, 0, 3, 1, 0}},
		{"unknown tag", []byte{0xCA, 0xFE, 0xBA, 0xBE, 0, 0, 0, 61, 0, 2, 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestLongConstantsOccupyTwoSlots(t *testing.T) {
	b := NewBuilder("p/C", AccPublic)
	long := b.Long(7)
	next := b.Utf8("after")
	assert.Equal(t, long+2, next)

	cf := roundTrip(t, b.MustBuild())
	assert.Equal(t, ConstantLong, cf.ConstantPool.TagAt(long))
	assert.Equal(t, ConstantTag(0), cf.ConstantPool.TagAt(long+1))
	assert.Equal(t, "after", cf.ConstantPool.GetUtf8(next))
}
