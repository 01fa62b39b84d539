package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/classmodel/classfile"
)

const pub = classfile.AccPublic

// writeClasses lays out class files below a fresh directory the way a
// compiler output directory looks.
func writeClasses(t *testing.T, classes ...*classfile.ClassFile) string {
	t.Helper()
	dir := t.TempDir()
	for _, cf := range classes {
		data, err := classfile.EncodeBytes(cf)
		require.NoError(t, err)
		path := filepath.Join(dir, filepath.FromSlash(cf.ClassName())+".class")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	return dir
}

func sampleClasspath(t *testing.T) string {
	object := classfile.NewBuilder("java/lang/Object", pub|classfile.AccSuper)
	object.AddMethod(pub, "<init>", "()V")
	object.AddMethod(pub, "toString", "()Ljava/lang/String;")
	object.AddMethod(pub, "hashCode", "()I")

	str := classfile.NewBuilder("java/lang/String", pub|classfile.AccFinal|classfile.AccSuper)

	named := classfile.NewBuilder("org/lib/Named", pub|classfile.AccInterface|classfile.AccAbstract)
	named.AddMethod(pub|classfile.AccAbstract, "name", "()Ljava/lang/String;")

	person := classfile.NewBuilder("com/acme/Person", pub|classfile.AccSuper)
	person.AddInterface("org/lib/Named")
	person.AddField(classfile.AccPrivate, "name", "Ljava/lang/String;")
	person.AddMethod(pub, "<init>", "(Ljava/lang/String;)V").
		Parameters(classfile.Param{Name: "name"})
	person.AddMethod(pub, "name", "()Ljava/lang/String;")
	person.AddMethod(pub, "toString", "()Ljava/lang/String;")
	person.AddMethod(pub, "greet", "(Ljava/lang/String;)V")

	return writeClasses(t, object.MustBuild(), str.MustBuild(), named.MustBuild(), person.MustBuild())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDescribe(t *testing.T) {
	cp := sampleClasspath(t)
	out, err := run(t, "-c", cp, "describe", "com.acme.Person")
	require.NoError(t, err)
	assert.Equal(t, "class\tcom.acme.Person\tpublic\n"+
		"extends\tjava.lang.Object\n"+
		"implements\torg.lib.Named\n"+
		"\n"+
		"field\tname\tjava.lang.String\tprivate\n"+
		"\n"+
		"constructor\t(java.lang.String name)\tpublic\n"+
		"\n"+
		"method\tname\tjava.lang.String\t()\tpublic\n"+
		"method\ttoString\tjava.lang.String\t()\tpublic\n"+
		"method\tgreet\tvoid\t(java.lang.String)\tpublic\n", out)
}

func TestDescribeJSONFromEnvironment(t *testing.T) {
	cp := sampleClasspath(t)
	t.Setenv("JTM_FORMAT", "json")
	out, err := run(t, "-c", cp, "describe", "com/acme/Person", "int[]")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "com.acme.Person"`)
	assert.Contains(t, out, `"kind": "array"`)
}

func TestImports(t *testing.T) {
	cp := sampleClasspath(t)
	out, err := run(t, "-c", cp, "imports", "com.acme.Person")
	require.NoError(t, err)
	assert.Equal(t, "org.lib.Named\n", out)
}

func TestOverrides(t *testing.T) {
	cp := sampleClasspath(t)
	out, err := run(t, "-c", cp, "overrides", "com.acme.Person")
	require.NoError(t, err)
	assert.Equal(t, "name()\ntoString()\n", out)

	out, err = run(t, "-c", cp, "overrides", "--all", "com.acme.Person")
	require.NoError(t, err)
	assert.Equal(t, "override\tname()\noverride\ttoString()\nnew\tgreet(java.lang.String)\n", out)
}

func TestMembers(t *testing.T) {
	cp := sampleClasspath(t)
	out, err := run(t, "-c", cp, "members", "-k", "constructors", "com.acme.Person")
	require.NoError(t, err)
	assert.Equal(t, "constructor\t(java.lang.String name)\tpublic\n", out)

	_, err = run(t, "-c", cp, "members", "-k", "nested", "com.acme.Person")
	assert.ErrorContains(t, err, `unknown member kind "nested"`)

	_, err = run(t, "-c", cp, "members", "int")
	assert.ErrorContains(t, err, "want a class or interface")
}

func TestErrors(t *testing.T) {
	_, err := run(t, "describe", "com.acme.Person")
	assert.ErrorContains(t, err, "empty classpath")

	cp := sampleClasspath(t)
	_, err = run(t, "-c", cp, "describe", "com.acme.Missing")
	assert.ErrorContains(t, err, "com.acme.Missing")

	_, err = run(t, "-c", cp, "-f", "xml", "describe", "com.acme.Person")
	assert.ErrorContains(t, err, `format "xml"`)
}

// chdir changes the working directory for the duration of the test,
// like testing.T.Chdir (unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
