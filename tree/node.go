package tree

import (
	"github.com/ergocortex/MLAssistant/feature"
)

/*
NodeID identifies a node of a Tree. IDs are positions in the tree's node
arena: they stay valid when other nodes are removed.
*/
type NodeID int

// EdgeID identifies an edge of a Tree
type EdgeID int

// NoNode is the parent of the root node
const NoNode NodeID = -1

/*
Node is a vertex of the tree
*/
type Node struct {
	ID NodeID
	// Whether the node is a terminal one
	Leaf bool
	// For internal nodes, a feature.Text with the name of the attribute the
	// node splits samples on. For leaves, the value predicted for samples
	// reaching the node.
	Label feature.Value
}

/*
Edge is a directed arc from a node to one of its children. Samples follow it
when their value v for the attribute of the source node makes
`v Operator Value` true.
*/
type Edge struct {
	ID       EdgeID
	Source   NodeID
	Target   NodeID
	Operator feature.Operator
	Value    feature.Value
	// Proportion of the source node's training rows that follow the edge
	Weight float64
}

// Criterion returns the constraint samples must satisfy to follow the edge.
func (e *Edge) Criterion(attribute string) feature.Criterion {
	return feature.Criterion{Attribute: attribute, Operator: e.Operator, Value: e.Value}
}

/*
Hierarchy is the record of a node's position in the tree: its parent, NoNode
for the root, and its outgoing edges in insertion order.
*/
type Hierarchy struct {
	Parent NodeID
	Edges  []EdgeID
}
