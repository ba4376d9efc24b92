package tree

import (
	"github.com/ergocortex/MLAssistant/feature"
	"github.com/pkg/errors"
)

/*
ProbabilityCluster gathers the leaves of a tree sharing a label together with
the accumulated probability of reaching any of them from the root.
*/
type ProbabilityCluster struct {
	Value       feature.Value
	Probability float64
	Nodes       []NodeID
}

/*
ProbabilityClusters returns the probability clusters of the leaves of the
tree, computed with AccumulateProbabilityClusters from the root, in the order
their labels are first found.
*/
func (t *Tree) ProbabilityClusters() ([]ProbabilityCluster, error) {
	if t.root == NoNode {
		return nil, ErrNotTrained
	}
	clusters := []ProbabilityCluster{}
	err := t.AccumulateProbabilityClusters(t.root, &clusters, 1.0)
	if err != nil {
		return nil, err
	}
	return clusters, nil
}

/*
AccumulateProbabilityClusters walks the subtree under the node with the given
ID depth-first. The probability of reaching a node is p for the given one and
the probability of its parent times the weight of the edge leading to it for
the rest. Every leaf adds its probability to the cluster in the accumulator
with its label, which is appended if missing, and is recorded in it.
*/
func (t *Tree) AccumulateProbabilityClusters(id NodeID, clusters *[]ProbabilityCluster, p float64) error {
	if !t.ranked {
		return errors.Wrap(ErrStructuralInvariant, "aggregating unranked tree")
	}
	n := t.Node(id)
	h, ok := t.hierarchy[id]
	if n == nil || !ok {
		return errors.Wrapf(ErrStructuralInvariant, "aggregating node %d: no hierarchy record", id)
	}
	if n.Leaf {
		for i := range *clusters {
			c := &(*clusters)[i]
			if c.Value == n.Label {
				c.Probability += p
				c.Nodes = append(c.Nodes, id)
				return nil
			}
		}
		*clusters = append(*clusters, ProbabilityCluster{n.Label, p, []NodeID{id}})
		return nil
	}
	for _, eID := range h.Edges {
		e := t.edges[eID]
		if err := t.AccumulateProbabilityClusters(e.Target, clusters, p*e.Weight); err != nil {
			return err
		}
	}
	return nil
}
