package objectid

import "encoding/json"

// MarshalJSON encodes the ownership tree under n: its id, its hash code and,
// recursively, the objects it owns keyed by id.
//
// Because Node is embedded, this method is also promoted to the outer type,
// which means json.Marshal of an object encodes its ownership tree rather than
// its own fields. Types that need their fields encoded must implement
// MarshalJSON themselves.
func (n *Node) MarshalJSON() ([]byte, error) {
	obj := struct {
		ID       string           `json:"id,omitempty"`
		Hash     string           `json:"hash"`
		Children map[string]*Node `json:"children,omitempty"`
	}{
		ID:   n.id,
		Hash: n.Hash(),
	}
	if len(n.owned) > 0 {
		obj.Children = make(map[string]*Node, len(n.owned))
		for id, child := range n.owned {
			obj.Children[id] = child
		}
	}
	return json.Marshal(obj)
}
