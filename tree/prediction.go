package tree

import (
	"fmt"

	"github.com/ergocortex/MLAssistant/feature"
	"github.com/pkg/errors"
)

/*
Outcome tells how the traversal of a tree for a sample ended.
*/
type Outcome int

const (
	// Classified means the traversal reached a leaf
	Classified Outcome = iota
	// Unclassifiable means the sample satisfied no outgoing edge of an
	// internal node
	Unclassifiable
	// UnknownAttribute means the sample has no value for the attribute an
	// internal node splits on
	UnknownAttribute
)

func (o Outcome) String() string {
	switch o {
	case Classified:
		return "classified"
	case Unclassifiable:
		return "unclassifiable"
	case UnknownAttribute:
		return "unknown attribute"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

/*
Prediction represents the result of predicting a sample with a Tree: the node
where the traversal stopped, how it got there and, for UnknownAttribute
outcomes, the attribute the sample lacked.
*/
type Prediction struct {
	Node      *Node
	Outcome   Outcome
	Attribute string
}

/*
Value returns the label of the leaf reached and true for Classified
predictions, and nil and false otherwise.
*/
func (p Prediction) Value() (feature.Value, bool) {
	if p.Outcome != Classified || p.Node == nil {
		return nil, false
	}
	return p.Node.Label, true
}

func (p Prediction) String() string {
	switch p.Outcome {
	case Classified:
		return fmt.Sprintf("%v", p.Node.Label)
	case UnknownAttribute:
		return fmt.Sprintf("%v (at node %d: %s)", p.Outcome, p.Node.ID, p.Attribute)
	}
	return fmt.Sprintf("%v (at node %d)", p.Outcome, p.Node.ID)
}

/*
Predict takes a sample and walks the tree from the root following, at every
internal node, the first outgoing edge whose criterion on the node's
attribute the sample satisfies, until a leaf is reached.

Samples that satisfy no edge of a node, or that lack the node's attribute,
stop the traversal at that node and get an Unclassifiable or UnknownAttribute
prediction instead of an error. An error is only returned when the tree is
empty, not ranked or inconsistent, or when a sample value cannot be compared
with an edge value.
*/
func (t *Tree) Predict(s feature.Sample) (Prediction, error) {
	if t == nil || t.root == NoNode {
		return Prediction{}, ErrNotTrained
	}
	if !t.ranked {
		return Prediction{}, errors.Wrap(ErrStructuralInvariant, "predicting with unranked tree")
	}
	id := t.root
	for {
		n := t.Node(id)
		h, ok := t.hierarchy[id]
		if n == nil || !ok {
			return Prediction{}, errors.Wrapf(ErrStructuralInvariant, "predicting sample: node %d has no hierarchy record", id)
		}
		if n.Leaf {
			return Prediction{Node: n, Outcome: Classified}, nil
		}
		attribute := fmt.Sprintf("%v", n.Label)
		next := NoNode
		for _, eID := range h.Edges {
			ok, err := t.edges[eID].Criterion(attribute).SatisfiedBy(s)
			if errors.Is(err, feature.ErrUndefinedAttribute) {
				return Prediction{Node: n, Outcome: UnknownAttribute, Attribute: attribute}, nil
			}
			if err != nil {
				return Prediction{}, errors.Wrapf(err, "predicting sample at node %d", id)
			}
			if ok {
				next = t.edges[eID].Target
				break
			}
		}
		if next == NoNode {
			return Prediction{Node: n, Outcome: Unclassifiable}, nil
		}
		id = next
	}
}
