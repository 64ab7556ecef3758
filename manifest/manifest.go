// manifest describes trees of owned objects in YAML and builds them.
//
// A manifest names an object and the objects it owns. Children listed under
// "children" are created and registered when the manifest is built. Objects
// listed under "lazy" are templates: they are created the first time their id
// is resolved, through the factory hook of their owner, and cached from then
// on. Ids listed under "pending" are not available yet: resolving them is
// retried every time. Ids listed under "absent", like any id the manifest does
// not declare, are known not to exist.
//
//  id: app
//  children:
//    - id: toolbar
//      kind: toolbar
//      children:
//        - id: save
//  lazy:
//    settings:
//      kind: dialog
//      children:
//        - id: ok
//  pending: [network]
//  absent: [legacy]
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CrimsonAS/qobjectid/objectid"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid manifest")

// Manifest describes one object and the objects it owns.
type Manifest struct {
	ID       string               `yaml:"id,omitempty"`
	Kind     string               `yaml:"kind,omitempty"`
	Attrs    map[string]string    `yaml:"attrs,omitempty"`
	Children []*Manifest          `yaml:"children,omitempty"`
	Lazy     map[string]*Manifest `yaml:"lazy,omitempty"`
	Pending  []string             `yaml:"pending,omitempty"`
	Absent   []string             `yaml:"absent,omitempty"`
}

// Parse decodes a manifest from YAML. Unknown keys, and keys that YAML reads as
// null (such as an unquoted null:), are rejected.
func Parse(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest decode failed: %w", err)
	}
	if err := checkKeys(&doc); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("manifest decode failed: %w", err)
	}
	return &m, nil
}

// Load reads and decodes a manifest from r. See Parse.
func Load(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// checkKeys rejects mapping keys that are not strings. The decoder silently
// drops a null key instead of reporting it as unknown.
func checkKeys(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if key := n.Content[i]; key.ShortTag() == "!!null" {
				return fmt.Errorf("%w: line %d: key %q is read as null, not a name", ErrInvalid, key.Line, key.Value)
			}
		}
	}
	for _, c := range n.Content {
		if err := checkKeys(c); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads and decodes the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks that every id can be registered: ids are not empty (except
// for the top object), contain no "/", and are declared at most once among
// the children, lazy templates, pending and absent ids of the same owner.
func (m *Manifest) Validate() error {
	if strings.Contains(m.ID, objectid.PathSeparator) {
		return invalidf("", "id %q contains %q", m.ID, objectid.PathSeparator)
	}
	return m.validate(m.ID)
}

func (m *Manifest) validate(path string) error {
	seen := make(map[string]string)
	declare := func(id, what string) error {
		if id == "" {
			return invalidf(path, "%s without an id", what)
		} else if strings.Contains(id, objectid.PathSeparator) {
			return invalidf(path, "%s id %q contains %q", what, id, objectid.PathSeparator)
		} else if prev, dup := seen[id]; dup {
			return invalidf(path, "%s id %q is already declared as %s", what, id, prev)
		}
		seen[id] = what
		return nil
	}

	for _, child := range m.Children {
		if child == nil {
			return invalidf(path, "empty child")
		}
		if err := declare(child.ID, "child"); err != nil {
			return err
		}
		if err := child.validate(joinPath(path, child.ID)); err != nil {
			return err
		}
	}
	for id, tmpl := range m.Lazy {
		if err := declare(id, "lazy"); err != nil {
			return err
		}
		if tmpl == nil {
			// An empty template is a plain object
			continue
		}
		if tmpl.ID != "" && tmpl.ID != id {
			return invalidf(path, "lazy template %q has a different id %q", id, tmpl.ID)
		}
		if err := tmpl.validate(joinPath(path, id)); err != nil {
			return err
		}
	}
	for _, id := range m.Pending {
		if err := declare(id, "pending"); err != nil {
			return err
		}
	}
	for _, id := range m.Absent {
		if err := declare(id, "absent"); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path, id string) string {
	if path == "" {
		return id
	}
	return path + objectid.PathSeparator + id
}

func invalidf(path, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if path == "" {
		return fmt.Errorf("%w: %s", ErrInvalid, msg)
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalid, path, msg)
}
