package typemodel

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/classmodel/classfile"
)

func TestCompareMethodsIsTotal(t *testing.T) {
	mixed := build("com/acme/Mixed", pub|classfile.AccSuper, func(b *classfile.Builder) {
		b.AddMethod(priv, "a", "()V")
		b.AddMethod(pub, "b", "(I)V")
		b.AddMethod(pub, "b", "(J)V")
		b.AddMethod(pub, "b", "()V")
		b.AddMethod(pub|static, "z", "()I")
		b.AddMethod(prot, "c", "()Ljava/lang/String;")
		b.AddMethod(0, "d", "()V")
		b.AddMethod(pub, "e", "()Lcom/acme/Outer$Entry;")
		b.AddMethod(pub, "e", "()Lorg/other/Entry;")
	})
	reg := newTestRegistry(t, mixed)
	ct, err := reg.ClassTypeByName("com.acme.Mixed")
	require.NoError(t, err)
	methods, err := ct.Methods()
	require.NoError(t, err)

	for i, a := range methods {
		for j, b := range methods {
			c := CompareMethods(a, b)
			assert.Equal(t, -CompareMethods(b, a), c, "%s vs %s", a, b)
			if i != j {
				assert.NotZero(t, c, "%s vs %s", a, b)
			}
		}
	}

	sorted, err := ct.MethodsSorted()
	require.NoError(t, err)
	var got []string
	for _, m := range sorted {
		got = append(got, m.Name()+m.Descriptor())
	}
	assert.Equal(t, []string{
		"z()I",
		"e()Lcom/acme/Outer$Entry;",
		"e()Lorg/other/Entry;",
		"b()V",
		"b(I)V",
		"b(J)V",
		"c()Ljava/lang/String;",
		"d()V",
		"a()V",
	}, got)

	reversed := slices.Clone(methods)
	slices.Reverse(reversed)
	slices.SortStableFunc(reversed, CompareMethods)
	assert.Equal(t, sorted, reversed)
}

func TestVisibilityRank(t *testing.T) {
	ranks := []Visibility{VisibilityPublic, VisibilityProtected, VisibilityPackage, VisibilityPrivate}
	assert.True(t, slices.IsSorted(ranks))
	var names []string
	for _, v := range ranks {
		names = append(names, v.String())
	}
	assert.Equal(t, []string{"public", "protected", "package", "private"}, names)
}
