package objectid

import (
	"fmt"
	"reflect"
	"strings"

	uuid "github.com/satori/go.uuid"
)

// PathSeparator delimits the ids of a path passed to Resolve.
const PathSeparator = "/"

// Object is implemented by any type that embeds Node. The embedded Node
// provides ObjectNode, so a struct pointer is an Object without any further
// code:
//
//  type Button struct {
//      objectid.Node
//      Label string
//  }
//
//  var _ objectid.Object = &Button{}
type Object interface {
	ObjectNode() *Node
}

// If an Object implements ObjectCreator, CreateObject is called by Resolve for
// ids that are not registered yet. Returning an object registers it under id
// and caches it. Returning FactoryNull reports that there is no such object
// without caching that answer. Returning FactoryPending reports that the object
// can't be created yet; Resolve will ask again next time.
type ObjectCreator interface {
	Object
	CreateObject(id string) (Object, bool)
}

// If an Object implements IDChangeNotifier, ObjectIDChanged is called after its
// id changes, either through SetObjectID or because it was registered under a
// different id.
type IDChangeNotifier interface {
	Object
	ObjectIDChanged(oldID, newID string)
}

// Factory creates the object for an id, with the same results as
// ObjectCreator.CreateObject. A Factory set on a Node takes precedence over
// the ObjectCreator implementation of its outer object.
type Factory func(id string) (Object, bool)

// FactoryPending is the "not available yet" answer of a Factory: nothing is
// cached and the next Resolve of the id asks the factory again.
func FactoryPending() (Object, bool) { return nil, false }

// FactoryNull is the "there is no such object" answer of a Factory.
func FactoryNull() (Object, bool) { return nil, true }

// Node holds the ownership state of an object: its id, its owner and the
// objects it owns. The zero value is ready to use.
//
// The owner and id are only changed through the registration methods of the
// owning Node (RegisterAs, Deregister and friends) and SetObjectID, which
// keeps both sides of the ownership link consistent.
type Node struct {
	self    Object
	hash    string
	id      string
	owner   *Node
	owned   map[string]*Node
	factory Factory
}

// ObjectNode returns n. It makes *Node, and any struct embedding Node, an
// Object.
func (n *Node) ObjectNode() *Node {
	return n
}

// Init binds obj to its embedded Node and assigns the Node's hash code. Objects
// are initialized automatically when they are registered or created by a
// factory, so Init is only needed for the top of a tree: until then, Owner()
// of its children returns the bare *Node rather than the outer object.
//
// Init is idempotent and returns the Node of obj.
func Init(obj Object) *Node {
	n := obj.ObjectNode()
	if n.self == nil || n.self == Object(n) {
		n.self = obj
	}
	if n.hash == "" {
		u, _ := uuid.NewV4()
		n.hash = u.String()
	}
	return n
}

// object returns the outer object of n, binding n to itself if Init was never
// called.
func (n *Node) object() Object {
	if n.self == nil {
		Init(n)
	}
	return n.self
}

// ID returns the id of the object, or an empty string if it has none.
func (n *Node) ID() string {
	return n.id
}

// Owner returns the object owning this one, or nil.
func (n *Node) Owner() Object {
	if n.owner == nil {
		return nil
	}
	return n.owner.object()
}

// Hash returns a code that uniquely identifies this object within the
// process. It is stable for the lifetime of the object.
func (n *Node) Hash() string {
	n.object()
	return n.hash
}

// SetObjectID assigns an id to an object that is not owned. Owned objects are
// renamed by their owner: deregister the object and register it again under
// the new id.
func (n *Node) SetObjectID(id string) error {
	const op = "objectid.SetObjectID"
	if n.owner != nil {
		return newError(op, n, n.owner, ErrOwnedIDChange)
	}
	if strings.Contains(id, PathSeparator) {
		return newError(op, n, nil, ErrInvalidID)
	}
	n.setID(id)
	return nil
}

func (n *Node) setID(id string) {
	oldID := n.id
	if oldID == id {
		return
	}
	n.id = id
	if notifier, ok := n.object().(IDChangeNotifier); ok {
		notifier.ObjectIDChanged(oldID, id)
	}
}

// SetFactory sets the function used by Resolve to create objects for unknown
// ids. A nil factory restores the default, which is the ObjectCreator
// implementation of the outer object if any.
func (n *Node) SetFactory(f Factory) {
	n.factory = f
}

func (n *Node) String() string {
	h := n.Hash()
	if len(h) > 8 {
		h = h[:8]
	}
	if n.id == "" {
		return fmt.Sprintf("%T[%s]", n.self, h)
	}
	return fmt.Sprintf("%T[%s](%s)", n.self, h, n.id)
}

// isNil reports whether obj is nil or a typed nil pointer, neither of which
// can be asked for its Node.
func isNil(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
