package objectid

import (
	"errors"
	"strings"
)

// AbsolutePath returns the path of obj from the top of its ownership tree,
// such that Root(obj).ObjectNode().Resolve(AbsolutePath(obj)) returns obj. An
// object without an owner has an empty path.
func AbsolutePath(obj Object) string {
	var segs []string
	for n := obj.ObjectNode(); n.owner != nil; n = n.owner {
		segs = append(segs, n.id)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, PathSeparator)
}

// Root returns the topmost owner of obj, or obj itself if it has no owner.
func Root(obj Object) Object {
	n := obj.ObjectNode()
	for n.owner != nil {
		n = n.owner
	}
	return n.object()
}

// WalkFunc is called by Walk for each object. The path is relative to the
// object Walk started from, which is visited first with an empty path.
type WalkFunc func(path string, obj Object) error

// Walk visits obj and, depth-first in id order, every object it owns. Walk
// stops at the first error returned by fn, except ErrSkipChildren, which
// skips the objects owned by the current one.
//
// Objects created by Resolve while walking are only visited if their owner
// has not been visited yet.
func Walk(obj Object, fn WalkFunc) error {
	err := walk("", obj, fn)
	if errors.Is(err, ErrSkipChildren) {
		return nil
	}
	return err
}

func walk(path string, obj Object, fn WalkFunc) error {
	if err := fn(path, obj); err != nil {
		return err
	}

	for _, child := range obj.ObjectNode().Children() {
		childPath := child.ObjectNode().id
		if path != "" {
			childPath = path + PathSeparator + childPath
		}
		if err := walk(childPath, child, fn); err != nil && !errors.Is(err, ErrSkipChildren) {
			return err
		}
	}
	return nil
}
