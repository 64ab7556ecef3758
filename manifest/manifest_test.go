package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CrimsonAS/qobjectid/objectid"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appManifest = `
id: app
children:
  - id: toolbar
    kind: toolbar
    children:
      - id: save
        kind: button
        attrs:
          label: Save
  - id: sidebar
lazy:
  settings:
    kind: dialog
    children:
      - id: ok
  about:
pending: [network]
absent: [legacy]
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(appManifest))
	require.NoError(t, err)

	want := &Manifest{
		ID: "app",
		Children: []*Manifest{
			{
				ID:   "toolbar",
				Kind: "toolbar",
				Children: []*Manifest{
					{ID: "save", Kind: "button", Attrs: map[string]string{"label": "Save"}},
				},
			},
			{ID: "sidebar"},
		},
		Lazy: map[string]*Manifest{
			"settings": {Kind: "dialog", Children: []*Manifest{{ID: "ok"}}},
			"about":    nil,
		},
		Pending: []string{"network"},
		Absent:  []string{"legacy"},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("parsed manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("id: app\nchildrne: []\n"))
	assert.Error(t, err)

	_, err = Parse(nil)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(appManifest), 0o644))

	m, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "app", m.ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		msg  string
	}{
		{"slash in root id", "id: a/b", "contains"},
		{"child without id", "children:\n  - kind: x", "child without an id"},
		{"slash in child id", "children:\n  - id: a/b", "contains"},
		{"duplicate child", "children:\n  - id: a\n  - id: a", "already declared"},
		{"child and lazy", "children:\n  - id: a\nlazy:\n  a: {}", "already declared"},
		{"pending and absent", "pending: [a]\nabsent: [a]", "already declared"},
		{"lazy id mismatch", "lazy:\n  a:\n    id: b", "different id"},
		{"nested", "children:\n  - id: a\n    children:\n      - id: b\n      - id: b", "a: child id \"b\""},
		{"nested lazy", "lazy:\n  a:\n    pending: ['']", "a: pending without an id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse([]byte(tc.yaml))
			require.NoError(t, err)

			err = m.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tc.msg)

			_, err = Build(m)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestBuild(t *testing.T) {
	m, err := Parse([]byte(appManifest))
	require.NoError(t, err)
	app, err := Build(m)
	require.NoError(t, err)

	assert.Equal(t, "app", app.ID())
	assert.Equal(t, 2, app.Len())

	obj, ok := app.Resolve("toolbar/save")
	require.True(t, ok)
	save := obj.(*Element)
	assert.Equal(t, "button", save.Kind)
	assert.Equal(t, "Save", save.Attrs["label"])
	assert.Equal(t, "toolbar/save", objectid.AbsolutePath(save))
	assert.Same(t, app, objectid.Root(save))
}

func TestBuildLazy(t *testing.T) {
	m, err := Parse([]byte(appManifest))
	require.NoError(t, err)
	app, err := Build(m)
	require.NoError(t, err)

	require.Equal(t, 2, app.Len(), "lazy objects must not be built eagerly")
	_, ok := app.Resolve("settings")
	require.True(t, ok)

	ok1, found := app.Resolve("settings/ok")
	require.True(t, found)
	ok2, _ := app.Resolve("settings/ok")
	assert.Same(t, ok1, ok2)
	assert.Equal(t, 1, app.Attempts("settings"))
	assert.Equal(t, 3, app.Len())

	about, ok := app.Resolve("about")
	require.True(t, ok)
	assert.Equal(t, "about", about.ObjectNode().ID())
	assert.Empty(t, about.(*Element).Kind)
}

func TestParseNullKey(t *testing.T) {
	_, err := Parse([]byte("id: app\npending: [network]\nnull: [legacy]\n"))
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "line 3")

	_, err = Parse([]byte("id: app\nlazy:\n  dialog:\n    ~: [x]\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	// A quoted key is a string, and not a known one
	_, err = Parse([]byte("id: app\n\"null\": [legacy]\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "not found")

	m, err := Parse([]byte("id: app\nattrs:\n  label: null\nabsent: [legacy]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy"}, m.Absent)
	app, err := Build(m)
	require.NoError(t, err)
	obj, ok := app.Resolve("legacy")
	assert.True(t, ok)
	assert.Nil(t, obj)
}

func TestLoadNullKey(t *testing.T) {
	_, err := Load(strings.NewReader("null: [legacy]\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestBuildPendingAndNull(t *testing.T) {
	m, err := Parse([]byte(appManifest))
	require.NoError(t, err)
	app, err := Build(m)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, ok := app.Resolve("network")
		assert.False(t, ok)
	}
	assert.Equal(t, 3, app.Attempts("network"))

	obj, ok := app.Resolve("legacy")
	assert.True(t, ok)
	assert.Nil(t, obj)
	app.Resolve("legacy")
	assert.Equal(t, 2, app.Attempts("legacy"))

	_, ok = app.Resolve("legacy/child")
	assert.False(t, ok)

	obj, ok = app.Resolve("undeclared")
	assert.True(t, ok)
	assert.Nil(t, obj)
	_, ok = app.Resolve("undeclared/child")
	assert.False(t, ok)
	assert.Equal(t, 2, app.Attempts("undeclared"))
	assert.Equal(t, 2, app.Len())
}

func TestBuiltTreeWalk(t *testing.T) {
	m, err := Parse([]byte(appManifest))
	require.NoError(t, err)
	app, err := Build(m)
	require.NoError(t, err)

	var paths []string
	require.NoError(t, objectid.Walk(app, func(path string, obj objectid.Object) error {
		paths = append(paths, path)
		return nil
	}))
	assert.Equal(t, "|sidebar|toolbar|toolbar/save", strings.Join(paths, "|"))
}
