package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldSignature(t *testing.T) {
	tests := []struct {
		sig     string
		want    string
		classes []string
	}{
		{"Ljava/util/List<Ljava/lang/String;>;", "java.util.List<java.lang.String>", []string{"java/util/List", "java/lang/String"}},
		{"Ljava/util/Map<TK;+Ljava/lang/Number;>;", "java.util.Map<K, ? extends java.lang.Number>", []string{"java/util/Map", "java/lang/Number"}},
		{"Ljava/util/List<*>;", "java.util.List<?>", []string{"java/util/List"}},
		{"Ljava/util/Comparator<-TT;>;", "java.util.Comparator<? super T>", []string{"java/util/Comparator"}},
		{"[[I", "int[][]", nil},
		{"TT;", "T", nil},
		{"Lp/Outer<TT;>.Inner<Ljava/lang/String;>;", "p.Outer<T>.Inner<java.lang.String>", []string{"p/Outer$Inner", "java/lang/String"}},
		{"LNoPackage;", "NoPackage", []string{"NoPackage"}},
	}
	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			sig, err := ParseFieldSignature(tt.sig)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sig.String())
			assert.Equal(t, tt.classes, sig.ClassNames(nil))
		})
	}
}

func TestParseFieldSignatureErrors(t *testing.T) {
	for _, sig := range []string{"", "I", "Ljava/util/List", "Ljava/util/List<>;x", "Ljava/lang/String;extra", "TT"} {
		t.Run(sig, func(t *testing.T) {
			_, err := ParseFieldSignature(sig)
			assert.Error(t, err)
		})
	}
}

func TestParseClassSignature(t *testing.T) {
	sig, err := ParseClassSignature("<K:Ljava/lang/Object;V::Ljava/lang/Comparable<TV;>;>Ljava/util/AbstractMap<TK;TV;>;Ljava/io/Serializable;")
	require.NoError(t, err)

	require.Len(t, sig.TypeParameters, 2)
	assert.Equal(t, "<K, V extends java.lang.Comparable<V>>", FormatTypeParameters(sig.TypeParameters))
	assert.Nil(t, sig.TypeParameters[1].ClassBound)
	assert.Equal(t, "java.util.AbstractMap<K, V>", sig.Superclass.String())
	require.Len(t, sig.Interfaces, 1)
	assert.Equal(t, "java/io/Serializable", sig.Interfaces[0].InternalName())
	assert.Equal(t,
		[]string{"java/lang/Object", "java/lang/Comparable", "java/util/AbstractMap", "java/io/Serializable"},
		sig.ClassNames(nil))
}

func TestParseMethodSignature(t *testing.T) {
	sig, err := ParseMethodSignature("<T:Ljava/lang/Number;>(Ljava/util/List<TT;>;I)TT;^Ljava/io/IOException;")
	require.NoError(t, err)

	assert.Equal(t, "<T extends java.lang.Number>", FormatTypeParameters(sig.TypeParameters))
	require.Len(t, sig.Parameters, 2)
	assert.Equal(t, "java.util.List<T>", sig.Parameters[0].String())
	assert.Equal(t, "int", sig.Parameters[1].String())
	assert.Equal(t, "T", sig.Result.String())
	require.Len(t, sig.Throws, 1)
	assert.Equal(t, "java.io.IOException", sig.Throws[0].String())

	void, err := ParseMethodSignature("(Ljava/util/Set<+Ljava/lang/CharSequence;>;)V")
	require.NoError(t, err)
	assert.Nil(t, void.Result)
	assert.Equal(t, []string{"java/util/Set", "java/lang/CharSequence"}, void.ClassNames(nil))

	_, err = ParseMethodSignature("(I")
	assert.Error(t, err)
	_, err = ParseMethodSignature("()")
	assert.Error(t, err)
}

func TestParseDescriptors(t *testing.T) {
	ft, err := ParseFieldDescriptor("[[Ljava/lang/String;")
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String[][]", ft.String())
	assert.Equal(t, "[[Ljava/lang/String;", ft.Descriptor())
	assert.True(t, ft.IsArray())
	assert.False(t, ft.IsPrimitive())

	for _, bad := range []string{"", "L;", "Q", "II", "[", "Ljava/lang/String"} {
		_, err := ParseFieldDescriptor(bad)
		assert.Error(t, err, bad)
	}

	md, err := ParseMethodDescriptor("(IJ[DLjava/lang/Object;)Z")
	require.NoError(t, err)
	assert.Equal(t, "(int, long, double[], java.lang.Object) boolean", md.String())
	assert.Equal(t, []string{"I", "J", "[D", "Ljava/lang/Object;"}, md.ParameterDescriptors())
	assert.Equal(t, []int{1, 2, 1, 1}, []int{md.Parameters[0].Slots(), md.Parameters[1].Slots(), md.Parameters[2].Slots(), md.Parameters[3].Slots()})

	md, err = ParseMethodDescriptor("()V")
	require.NoError(t, err)
	assert.Nil(t, md.ReturnType)
	assert.Empty(t, md.Parameters)

	for _, bad := range []string{"", "V", "(I", "()", "()VV", "(X)V"} {
		_, err := ParseMethodDescriptor(bad)
		assert.Error(t, err, bad)
	}
}

func TestSourceNames(t *testing.T) {
	assert.Equal(t, "java.util.Map$Entry", InternalToSourceName("java/util/Map$Entry"))
	assert.Equal(t, "java/util/Map$Entry", SourceToInternalName("java.util.Map$Entry"))
}
