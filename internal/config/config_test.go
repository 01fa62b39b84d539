package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	v := New()
	require.NoError(t, ReadFile(v, ""))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Empty(t, cfg.Classpath)
	assert.Empty(t, cfg.JavaHome)
	assert.Equal(t, "line", cfg.Format)
	assert.Equal(t, "java.lang", cfg.AlwaysAvailablePackage)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
classpath = ["lib/a.jar", "classes"]
format = "json"
always_available_package = "org.lib"

[log]
level = "debug"
json = true
`), 0o644))

	v := New()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/a.jar", "classes"}, cfg.Classpath)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "org.lib", cfg.AlwaysAvailablePackage)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestReadFileSearchesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jtm.toml"), []byte(`format = "yaml"`), 0o644))
	chdir(t, dir)

	v := New()
	require.NoError(t, ReadFile(v, ""))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestReadFileMissingExplicitPath(t *testing.T) {
	err := ReadFile(New(), filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "missing.toml")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jtm.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"json\"\n[log]\nlevel = \"info\"\n"), 0o644))
	t.Setenv("JTM_FORMAT", "java")
	t.Setenv("JTM_LOG_LEVEL", "error")

	v := New()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "java", cfg.Format)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"unknown format", Config{Format: "xml", AlwaysAvailablePackage: "java.lang"}, `format "xml"`},
		{"empty package", Config{Format: "line"}, "must not be empty"},
		{"internal package", Config{Format: "line", AlwaysAvailablePackage: "java/lang"}, "must use dots"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Validate(), tt.want)
		})
	}
	ok := Config{Format: "line", AlwaysAvailablePackage: "java.lang"}
	assert.NoError(t, ok.Validate())
}

func TestClasspathEntries(t *testing.T) {
	home := t.TempDir()
	jmods := filepath.Join(home, "jmods")
	require.NoError(t, os.Mkdir(jmods, 0o755))
	for _, name := range []string{"java.sql.jmod", "java.base.jmod", "README"} {
		require.NoError(t, os.WriteFile(filepath.Join(jmods, name), nil, 0o644))
	}

	cfg := Config{
		Classpath: []string{"a.jar" + string(os.PathListSeparator) + "b.jar", " classes "},
		JavaHome:  home,
	}
	entries, err := cfg.ClasspathEntries()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.jar",
		"b.jar",
		"classes",
		filepath.Join(jmods, "java.base.jmod"),
		filepath.Join(jmods, "java.sql.jmod"),
	}, entries)

	cfg.JavaHome = t.TempDir()
	_, err = cfg.ClasspathEntries()
	assert.ErrorContains(t, err, "no jmods found")
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
