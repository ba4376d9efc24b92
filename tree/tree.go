package tree

import (
	"fmt"
	"strings"

	"github.com/ergocortex/MLAssistant/feature"
	"github.com/pkg/errors"
)

/*
Tree is a rooted tree of Nodes connected by Edges.

Nodes and edges live in arenas indexed by their IDs. Removing one leaves a
hole in its arena so that the IDs of the rest stay valid.

The hierarchy records that traversals rely on are not maintained by AddNode
and AddEdge: RankHierarchy must be called once the nodes and edges are in
place. A Tree must not be used concurrently.
*/
type Tree struct {
	nodes     []*Node
	edges     []*Edge
	root      NodeID
	hierarchy map[NodeID]*Hierarchy
	ranked    bool
	live      int
}

// New returns an empty tree
func New() *Tree {
	return &Tree{root: NoNode}
}

/*
AddNode appends a new node to the tree and returns it. The node is a leaf
without label until the caller sets them. The first node added to an empty
tree is its root.
*/
func (t *Tree) AddNode() *Node {
	n := &Node{ID: NodeID(len(t.nodes))}
	t.nodes = append(t.nodes, n)
	t.live++
	if t.root == NoNode {
		t.root = n.ID
	}
	t.ranked = false
	return n
}

/*
AddEdge appends a new edge from the source node to the target node, labelled
with the given operator, value and weight, and returns it. The hierarchy
records are not updated until RankHierarchy is called.
*/
func (t *Tree) AddEdge(value feature.Value, weight float64, op feature.Operator, source, target NodeID) *Edge {
	e := &Edge{
		ID:       EdgeID(len(t.edges)),
		Source:   source,
		Target:   target,
		Operator: op,
		Value:    value,
		Weight:   weight,
	}
	t.edges = append(t.edges, e)
	t.ranked = false
	return e
}

// Root returns the ID of the root node, or NoNode for an empty tree
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node with the given ID or nil if there is none
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Edge returns the edge with the given ID or nil if there is none
func (t *Tree) Edge(id EdgeID) *Edge {
	if id < 0 || int(id) >= len(t.edges) {
		return nil
	}
	return t.edges[id]
}

// Nodes returns the nodes of the tree in creation order
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Edges returns the edges of the tree in creation order
func (t *Tree) Edges() []*Edge {
	edges := make([]*Edge, 0, len(t.edges))
	for _, e := range t.edges {
		if e != nil {
			edges = append(edges, e)
		}
	}
	return edges
}

// Len returns the number of nodes in the tree
func (t *Tree) Len() int {
	return t.live
}

// Clear removes every node and edge from the tree
func (t *Tree) Clear() {
	t.nodes = nil
	t.edges = nil
	t.root = NoNode
	t.hierarchy = nil
	t.ranked = false
	t.live = 0
}

/*
Hierarchy returns a copy of the hierarchy record of the node with the given
ID, and false if the node has none.
*/
func (t *Tree) Hierarchy(id NodeID) (Hierarchy, bool) {
	h, ok := t.hierarchy[id]
	if !ok {
		return Hierarchy{}, false
	}
	return Hierarchy{h.Parent, append([]EdgeID{}, h.Edges...)}, true
}

// Children returns the IDs of the nodes under the given one, in edge order
func (t *Tree) Children(id NodeID) []NodeID {
	h, ok := t.hierarchy[id]
	if !ok {
		return nil
	}
	children := make([]NodeID, 0, len(h.Edges))
	for _, eID := range h.Edges {
		children = append(children, t.edges[eID].Target)
	}
	return children
}

/*
RankHierarchy rebuilds the hierarchy records from the current nodes and
edges. The root gets NoNode as parent, every edge makes its source the parent
of its target and is appended to the outgoing edges of its source.

It returns an error wrapping ErrStructuralInvariant, and leaves the tree
unranked, if an edge references a missing node, a node has more than one
parent, a leaf has outgoing edges or a node cannot be reached from the root.
*/
func (t *Tree) RankHierarchy() error {
	t.ranked = false
	hierarchy := make(map[NodeID]*Hierarchy, len(t.nodes))
	for _, n := range t.nodes {
		if n != nil {
			hierarchy[n.ID] = &Hierarchy{Parent: NoNode, Edges: []EdgeID{}}
		}
	}
	if len(hierarchy) == 0 {
		t.hierarchy = hierarchy
		t.ranked = true
		return nil
	}
	if t.Node(t.root) == nil {
		return errors.Wrapf(ErrStructuralInvariant, "root node %d not found", t.root)
	}
	for _, e := range t.edges {
		if e == nil {
			continue
		}
		source, ok := hierarchy[e.Source]
		if !ok {
			return errors.Wrapf(ErrStructuralInvariant, "edge %d: source node %d not found", e.ID, e.Source)
		}
		target, ok := hierarchy[e.Target]
		if !ok {
			return errors.Wrapf(ErrStructuralInvariant, "edge %d: target node %d not found", e.ID, e.Target)
		}
		if target.Parent != NoNode || e.Target == t.root {
			return errors.Wrapf(ErrStructuralInvariant, "edge %d: node %d already has a parent", e.ID, e.Target)
		}
		if t.nodes[e.Source].Leaf {
			return errors.Wrapf(ErrStructuralInvariant, "edge %d: source node %d is a leaf", e.ID, e.Source)
		}
		target.Parent = e.Source
		source.Edges = append(source.Edges, e.ID)
	}
	reached := 0
	pending := []NodeID{t.root}
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		reached++
		for _, eID := range hierarchy[id].Edges {
			pending = append(pending, t.edges[eID].Target)
		}
	}
	if reached != len(hierarchy) {
		return errors.Wrapf(ErrStructuralInvariant, "%d of %d nodes unreachable from root", len(hierarchy)-reached, len(hierarchy))
	}
	t.hierarchy = hierarchy
	t.ranked = true
	return nil
}

/*
Prune removes pass-through nodes from the subtree under the node with the
given ID. A node with a single outgoing edge is replaced by its only child:
the edge from its parent is repointed to the child, or the child becomes the
root if the node was the root, and the node and its edge are removed. Pruning
then continues on the child. Nodes with several outgoing edges are kept and
pruning continues on each of their children.

The hierarchy records are kept up to date. An error wrapping
ErrStructuralInvariant is returned if the tree is not ranked or a node has no
hierarchy record.
*/
func (t *Tree) Prune(id NodeID) error {
	if !t.ranked {
		return errors.Wrap(ErrStructuralInvariant, "pruning unranked tree")
	}
	h, ok := t.hierarchy[id]
	if !ok {
		return errors.Wrapf(ErrStructuralInvariant, "pruning node %d: no hierarchy record", id)
	}
	if len(h.Edges) != 1 {
		for _, eID := range append([]EdgeID{}, h.Edges...) {
			if err := t.Prune(t.edges[eID].Target); err != nil {
				return err
			}
		}
		return nil
	}
	spliced := t.edges[h.Edges[0]]
	child, ok := t.hierarchy[spliced.Target]
	if !ok {
		return errors.Wrapf(ErrStructuralInvariant, "pruning node %d: child %d has no hierarchy record", id, spliced.Target)
	}
	if h.Parent == NoNode {
		t.root = spliced.Target
	} else {
		parent, ok := t.hierarchy[h.Parent]
		if !ok {
			return errors.Wrapf(ErrStructuralInvariant, "pruning node %d: parent %d has no hierarchy record", id, h.Parent)
		}
		for _, eID := range parent.Edges {
			if t.edges[eID].Target == id {
				t.edges[eID].Target = spliced.Target
			}
		}
	}
	child.Parent = h.Parent
	t.edges[spliced.ID] = nil
	t.nodes[id] = nil
	t.live--
	delete(t.hierarchy, id)
	return t.Prune(spliced.Target)
}

/*
Traverse takes a bottomup boolean and an error-returning function that takes
a node as parameter, and goes through the tree running the function with
every node reachable from the root. Traverse will call the function with a
parent node before calling it for its children if bottomup is false, and call
it after its children if bottomup is true. If the call to the function
returns an error, the traversing is aborted and the error is returned.
*/
func (t *Tree) Traverse(bottomup bool, f func(*Node) error) error {
	if !t.ranked {
		return errors.Wrap(ErrStructuralInvariant, "traversing unranked tree")
	}
	if t.root == NoNode {
		return nil
	}
	return t.traverse(t.root, bottomup, f)
}

func (t *Tree) traverse(id NodeID, bottomup bool, f func(*Node) error) error {
	n := t.Node(id)
	h, ok := t.hierarchy[id]
	if n == nil || !ok {
		return errors.Wrapf(ErrStructuralInvariant, "traversing node %d: no hierarchy record", id)
	}
	var err error
	if !bottomup {
		err = f(n)
	}
	if err != nil {
		return err
	}
	for _, eID := range h.Edges {
		err = t.traverse(t.edges[eID].Target, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		err = f(n)
	}
	return err
}

func (t *Tree) String() string {
	if t.root == NoNode {
		return "[empty]\n"
	}
	if !t.ranked {
		return "[unranked]\n"
	}
	return t.subtreeString(t.root, nil, "")
}

func (t *Tree) subtreeString(id NodeID, in *Edge, attribute string) string {
	n := t.Node(id)
	if n == nil {
		return fmt.Sprintf("ERROR: node %d not found\n", id)
	}
	result := fmt.Sprintf("[%d]\n", id)
	if in != nil {
		result = fmt.Sprintf("%s{ %v (%.2f) }\n", result, in.Criterion(attribute), in.Weight)
	}
	edges := t.hierarchy[id].Edges
	if n.Leaf {
		result = fmt.Sprintf("%s{ %v }\n", result, n.Label)
	}
	if len(edges) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	} else {
		result = fmt.Sprintf("%s \n", result)
	}
	for i, eID := range edges {
		e := t.edges[eID]
		for j, line := range strings.Split(t.subtreeString(e.Target, e, fmt.Sprintf("%v", n.Label)), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(edges)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
