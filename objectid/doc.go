// objectid gives objects identifiers, owners, and lookup of the objects they
// own by id or by path.
//
// Objects
//
// Any struct embedding Node is an Object. Each object can own other objects,
// each under an id that is unique among the objects of the same owner. An
// object has at most one owner, so owned objects form a tree; ids cannot
// contain "/", which separates the ids of a path.
//
//  type Window struct {
//      objectid.Node
//  }
//
//  type Button struct {
//      objectid.Node
//      Label string
//  }
//
//  win := &Window{}
//  objectid.Init(win)
//  win.RegisterAs(&Button{Label: "OK"}, "ok")
//
//  ok, _ := win.Resolve("ok")
//
// Ownership is changed only through the owner: RegisterAs and Register add an
// object, moving it away from its previous owner if needed, and Deregister or
// DeregisterObject remove it again. The owner and id of an object can be read
// but not set directly. Misuse is reported as an error wrapping
// ErrContractViolation, and leaves everything unchanged.
//
// Removing an object from its owner does not destroy it. An owner that is torn
// down is expected to release its objects first, for example with
// DeregisterAll.
//
// Paths
//
// Resolve accepts a single id or a path such as "toolbar/save", which is
// resolved one id at a time starting at the receiver. Empty segments are
// ignored, and an empty path resolves to the receiver itself. AbsolutePath
// returns the path of an object from the top of its tree.
//
// Creating objects on demand
//
// Objects are usually created the first time they are looked up. When Resolve
// meets an id that isn't registered, it asks the factory of the owner, either
// a Factory set with SetFactory or the CreateObject method of an owner that
// implements ObjectCreator:
//
//  func (w *Window) CreateObject(id string) (objectid.Object, bool) {
//      switch id {
//      case "cancel":
//          return &Button{Label: "Cancel"}, true
//      case "help":
//          if !helpAvailable {
//              return objectid.FactoryPending()
//          }
//          return &Button{Label: "Help"}, true
//      }
//      return objectid.FactoryNull()
//  }
//
// There are three possible answers. An object is registered under the id and
// returned by every later Resolve. FactoryNull means that no such object
// exists; Resolve returns a nil object, and will ask again next time.
// FactoryPending means that the object can't be created yet, for example
// because something it depends on isn't ready; Resolve reports that nothing was
// found, and will ask again next time.
//
// Concurrency
//
// Nodes are not safe for concurrent use. A tree shared between goroutines must
// be guarded by the application.
package objectid
