package mlassistant

import (
	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/ergocortex/MLAssistant/feature"
	"github.com/ergocortex/MLAssistant/tree"
	"github.com/sirupsen/logrus"
)

/*
ProbabilityTree is a tree that enumerates the combinations of attribute values
found in a frame and the distribution of the class under each of them. Its
edge weights are the proportions of rows following them, so the probability
clusters of its leaves form the distribution of the class.
*/
type ProbabilityTree struct {
	*tree.Tree
	Criterion Criterion
	options   options
}

/*
NewProbabilityTree takes a Criterion and a list of options and returns an
empty ProbabilityTree that orders attributes with the criterion when trained.
*/
func NewProbabilityTree(c Criterion, opts ...Option) *ProbabilityTree {
	return &ProbabilityTree{tree.New(), c, newOptions(opts)}
}

/*
Train takes a frame and grows the tree from its rows, replacing any previous
content.

Nodes are expanded regardless of class purity: the attributes of the frame,
followed by its class, are eligible at the root, and every internal node
consumes the attribute selected by the tree's criterion. Once only the class
is left, or the maximum depth is reached, the node splits on the class and
each of its partitions becomes a leaf labelled with the partition value.
Children for empty partitions of an attribute are leaves labelled with the
class mode of the node's rows, and carry no weight.

ErrEmptyInput is returned if the frame has no rows or no attributes.
*/
func (pt *ProbabilityTree) Train(f *dataset.Frame) error {
	if f.RowCount() == 0 || len(f.Attributes()) == 0 {
		return ErrEmptyInput
	}
	pt.Clear()
	g := &grower{pt.Tree, f, pt.Criterion, pt.options}
	eligible := append(f.Attributes(), f.Class().Name())
	_, err := g.enumerate(nil, eligible, 0)
	if err == nil {
		err = g.finish()
	}
	if err != nil {
		pt.Clear()
		return err
	}
	pt.options.logger.WithFields(logrus.Fields{
		"criterion": pt.Criterion,
		"rows":      f.RowCount(),
		"nodes":     pt.Len(),
	}).Info("probability tree grown")
	return nil
}

/*
Clusters returns the probability clusters of the leaves of the tree, one for
every class value it has found.
*/
func (pt *ProbabilityTree) Clusters() ([]tree.ProbabilityCluster, error) {
	return pt.ProbabilityClusters()
}

func (g *grower) enumerate(rows []int, eligible []string, depth int) (tree.NodeID, error) {
	n, err := g.addNode()
	if err != nil {
		return tree.NoNode, err
	}
	class := g.frame.Class()
	if len(eligible) == 1 || g.options.depthReached(depth) {
		n.Label = feature.Text(class.Name())
		for _, p := range class.ProbabilityDistribution(rows) {
			leaf, err := g.addLeaf(p.Value)
			if err != nil {
				return tree.NoNode, err
			}
			g.t.AddEdge(p.Value, p.Proportion, p.Operator, n.ID, leaf.ID)
		}
		return n.ID, nil
	}
	attribute, err := g.criterion.Select(g.frame, rows, eligible, 1)
	if err != nil {
		return tree.NoNode, err
	}
	column, err := g.frame.ColumnByName(attribute)
	if err != nil {
		return tree.NoNode, err
	}
	n.Label = feature.Text(attribute)
	partitions := column.ProbabilityDistribution(rows)
	g.options.logger.WithFields(logrus.Fields{
		"depth":      depth,
		"attribute":  attribute,
		"rows":       selectionSize(rows, g.frame),
		"partitions": len(partitions),
	}).Debug("enumerating node")
	remaining := without(eligible, attribute)
	for _, p := range partitions {
		var child tree.NodeID
		if len(p.Rows) == 0 {
			leaf, err := g.addLeaf(class.Mode(rows))
			if err != nil {
				return tree.NoNode, err
			}
			child = leaf.ID
		} else {
			child, err = g.enumerate(p.Rows, remaining, depth+1)
			if err != nil {
				return tree.NoNode, err
			}
		}
		g.t.AddEdge(p.Value, p.Proportion, p.Operator, n.ID, child)
	}
	return n.ID, nil
}
