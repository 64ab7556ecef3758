package manifest

import (
	"github.com/CrimsonAS/qobjectid/objectid"
	"go.uber.org/zap"
)

// Element is an object built from a Manifest. It creates the lazy objects of
// its manifest on demand.
type Element struct {
	objectid.Node
	Kind  string
	Attrs map[string]string

	manifest *Manifest
	attempts map[string]int
}

// Build validates m and builds its object along with every child declared
// under "children". Lazy objects are built when they are first resolved.
func Build(m *Manifest) (*Element, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return build(m, m.ID)
}

func build(m *Manifest, id string) (*Element, error) {
	if m == nil {
		m = &Manifest{}
	}
	e := &Element{
		Kind:     m.Kind,
		Attrs:    m.Attrs,
		manifest: m,
		attempts: make(map[string]int),
	}
	objectid.Init(e)
	if err := e.SetObjectID(id); err != nil {
		return nil, err
	}

	for _, childManifest := range m.Children {
		child, err := build(childManifest, childManifest.ID)
		if err != nil {
			return nil, err
		}
		if err := e.Register(child); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// CreateObject builds lazy objects and answers FactoryPending for the pending
// ids of the manifest. Absent and undeclared ids are null.
func (e *Element) CreateObject(id string) (objectid.Object, bool) {
	e.attempts[id]++

	if tmpl, ok := e.manifest.Lazy[id]; ok {
		child, err := build(tmpl, id)
		if err != nil {
			objectid.Logger().Error("lazy object build failed",
				zap.Stringer("owner", e), zap.String("id", id), zap.Error(err))
			return objectid.FactoryPending()
		}
		return child, true
	}
	for _, pendingID := range e.manifest.Pending {
		if pendingID == id {
			return objectid.FactoryPending()
		}
	}
	return objectid.FactoryNull()
}

// Attempts returns how many times the object for id was requested from this
// element's factory.
func (e *Element) Attempts(id string) int {
	return e.attempts[id]
}
