package objectid

import (
	"errors"
	"reflect"
	"strings"
)

var objectType = reflect.TypeOf((*Object)(nil)).Elem()

var errNotStruct = errors.New("object is not a pointer to a struct")

// RegisterFields registers the objects held in the exported fields of obj as
// objects owned by obj. obj must be a pointer to a struct. Fields whose type
// is an Object, or a struct embedding Node, are registered under their field
// name with the first letter lowercased. The objectid tag overrides the id,
// and `objectid:"-"` skips the field. Nil fields are skipped.
//
//  type Toolbar struct {
//      objectid.Node
//      Save   *Button
//      Open   *Button `objectid:"open-file"`
//      Scroll Scrollbar
//      Hidden *Button `objectid:"-"`
//  }
//
// Fields that are already owned by obj are left alone, so RegisterFields can
// be called again after fields have been filled in. Every field is checked
// before any is registered; on error nothing has been registered.
func RegisterFields(obj Object) error {
	const op = "objectid.RegisterFields"
	value := reflect.Indirect(reflect.ValueOf(obj))
	if !value.IsValid() || value.Kind() != reflect.Struct {
		return &Error{Op: op, Err: errNotStruct}
	}

	type fieldObject struct {
		child *Node
		id    string
	}
	var fields []fieldObject
	seen := make(map[string]*Node)

	owner := Init(obj)
	t := value.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if fieldShouldIgnore(field) {
			continue
		}

		var child Object
		fv := value.Field(i)
		if field.Type.Implements(objectType) {
			if (fv.Kind() == reflect.Ptr || fv.Kind() == reflect.Interface) && fv.IsNil() {
				continue
			}
			child = fv.Interface().(Object)
		} else if reflect.PtrTo(field.Type).Implements(objectType) && fv.CanAddr() {
			child = fv.Addr().Interface().(Object)
		} else {
			continue
		}

		if isNil(child) {
			return newError(op, nil, owner, ErrNilObject)
		}
		node, id := Init(child), fieldObjectID(field)
		if node.owner == owner {
			continue
		}
		if prev, dup := seen[id]; dup {
			if prev == node {
				continue
			}
			return newError(op, node, owner, ErrIDInUse)
		}
		if err := owner.checkRegister(node, id); err != nil {
			return newError(op, node, owner, err)
		}
		seen[id] = node
		fields = append(fields, fieldObject{node, id})
	}

	for _, f := range fields {
		if f.child.owner == owner {
			// The same object held by two fields
			continue
		}
		if f.child.owner != nil {
			f.child.owner.unlink(f.child)
		}
		owner.link(f.child, f.id)
	}
	return nil
}

func fieldShouldIgnore(field reflect.StructField) bool {
	if field.PkgPath != "" || field.Anonymous {
		// Unexported or embedded
		return true
	}
	return field.Tag.Get("objectid") == "-"
}

func fieldObjectID(field reflect.StructField) string {
	if tag := field.Tag.Get("objectid"); tag != "" {
		return tag
	}
	name := field.Name
	if len(name) > 0 {
		name = strings.ToLower(string(name[0])) + name[1:]
	}
	return name
}
