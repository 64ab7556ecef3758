package objectid

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Resolve returns the object with the given id, or walks a path of ids
// separated by "/" starting at this object.
//
// An id that isn't registered is passed to the factory (see SetFactory and
// ObjectCreator). Objects it returns are registered under the id, so later
// calls return the same object without asking again.
//
// The boolean result is false when nothing was found: the id is unknown and
// the factory returned FactoryPending. A nil object with a true result is the
// FactoryNull answer, which is not cached.
//
// Empty path segments are skipped, so "a//b/" is the same as "a/b" and a path
// with no segments at all ("", "/") resolves to this object.
func (n *Node) Resolve(path string) (Object, bool) {
	if child, ok := n.owned[path]; ok {
		return child.object(), true
	}

	if !strings.Contains(path, PathSeparator) {
		if path == "" {
			return n.object(), true
		}
		return n.create(path)
	}

	target := n.object()
	for _, seg := range strings.Split(path, PathSeparator) {
		if seg == "" {
			continue
		}
		if isNil(target) {
			// A null answer can't own anything
			return nil, false
		}
		next, ok := target.ObjectNode().Resolve(seg)
		if !ok {
			return nil, false
		}
		target = next
	}
	return target, true
}

// MustResolve is like Resolve, but panics with ErrNotFound when nothing was
// found. It is meant for construction code where the object is known to
// exist.
func (n *Node) MustResolve(path string) Object {
	obj, ok := n.Resolve(path)
	if !ok {
		panic(&Error{Op: "objectid.MustResolve", Owner: n.String(), Object: path, Err: ErrNotFound})
	}
	return obj
}

func (n *Node) create(id string) (Object, bool) {
	var obj Object
	var ok bool
	if n.factory != nil {
		obj, ok = n.factory(id)
	} else if creator, isCreator := n.object().(ObjectCreator); isCreator {
		obj, ok = creator.CreateObject(id)
	} else {
		obj, ok = FactoryPending()
	}

	if !ok {
		logger.Debug("object pending", zap.Stringer("owner", n), zap.String("id", id))
		return nil, false
	} else if isNil(obj) {
		logger.Debug("object is null", zap.Stringer("owner", n), zap.String("id", id))
		return nil, true
	}

	if err := n.RegisterAs(obj, id); err != nil {
		logger.Error("created object could not be registered",
			zap.Stringer("owner", n), zap.String("id", id), zap.Error(err))
		return nil, false
	}
	logger.Debug("object created", zap.Stringer("owner", n), zap.Stringer("object", obj.ObjectNode()))
	return obj, true
}

// Register adds obj to the objects owned by this one, under the id it already
// has. See RegisterAs.
func (n *Node) Register(obj Object) error {
	if isNil(obj) {
		return newError("objectid.Register", nil, n, ErrNilObject)
	}
	return n.RegisterAs(obj, obj.ObjectNode().id)
}

// RegisterAs adds obj to the objects owned by this one under id, and sets the
// owner and id of obj. If obj already has another owner, it is moved from
// that owner to this one. Registering an object that is already owned by this
// one does nothing.
//
// The returned errors all wrap ErrContractViolation. When an error is
// returned, neither obj nor any owner has been changed.
func (n *Node) RegisterAs(obj Object, id string) error {
	const op = "objectid.RegisterAs"
	if isNil(obj) {
		return newError(op, nil, n, ErrNilObject)
	}

	child := Init(obj)
	n.object()
	if child.owner == n {
		return nil
	}
	if err := n.checkRegister(child, id); err != nil {
		return newError(op, child, n, err)
	}

	if child.owner != nil {
		child.owner.unlink(child)
	}
	n.link(child, id)
	return nil
}

// checkRegister reports why child can't be registered under id, if it can't.
func (n *Node) checkRegister(child *Node, id string) error {
	if id == "" {
		return ErrNoID
	} else if strings.Contains(id, PathSeparator) {
		return ErrInvalidID
	} else if _, exists := n.owned[id]; exists {
		return ErrIDInUse
	}
	for p := n; p != nil; p = p.owner {
		if p == child {
			return ErrCycle
		}
	}
	return nil
}

func (n *Node) link(child *Node, id string) {
	if n.owned == nil {
		n.owned = make(map[string]*Node)
	}
	child.owner = n
	n.owned[id] = child
	child.setID(id)
	logger.Debug("registered", zap.Stringer("owner", n), zap.Stringer("object", child))
}

func (n *Node) unlink(child *Node) {
	delete(n.owned, child.id)
	child.owner = nil
	logger.Debug("deregistered", zap.Stringer("owner", n), zap.Stringer("object", child))
}

// Deregister removes the object with the given id from the objects owned by
// this one. The object keeps its id but has no owner afterwards; it is not
// otherwise affected. Deregistering an id that isn't registered does nothing.
func (n *Node) Deregister(id string) error {
	const op = "objectid.Deregister"
	if n.owned == nil {
		return newError(op, nil, n, ErrNothingOwned)
	}
	if strings.Contains(id, PathSeparator) {
		return &Error{Op: op, Owner: n.String(), Object: id, Err: ErrPathNotAllowed}
	}

	child, ok := n.owned[id]
	if !ok {
		return nil
	}
	n.unlink(child)
	return nil
}

// DeregisterObject removes obj from the objects owned by this one. Unlike
// Deregister, it is an error if obj isn't owned by this object.
func (n *Node) DeregisterObject(obj Object) error {
	const op = "objectid.DeregisterObject"
	if isNil(obj) {
		return newError(op, nil, n, ErrNilObject)
	}
	child := obj.ObjectNode()
	if n.owned == nil {
		return newError(op, child, n, ErrNothingOwned)
	}
	if cur, ok := n.owned[child.id]; !ok || cur != child {
		return newError(op, child, n, ErrNotOwned)
	}
	n.unlink(child)
	return nil
}

// DeregisterAll removes every object owned by this one and returns them,
// ordered by id. Owners use it to release their objects before teardown.
func (n *Node) DeregisterAll() []Object {
	children := n.Children()
	for _, obj := range children {
		n.unlink(obj.ObjectNode())
	}
	return children
}

// Children returns the objects owned by this one, ordered by id. The slice is
// a copy; changing it does not affect ownership.
func (n *Node) Children() []Object {
	ids := make([]string, 0, len(n.owned))
	for id := range n.owned {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	children := make([]Object, len(ids))
	for i, id := range ids {
		children[i] = n.owned[id].object()
	}
	return children
}

// Len returns the number of objects owned by this one.
func (n *Node) Len() int {
	return len(n.owned)
}
