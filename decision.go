package mlassistant

import (
	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/ergocortex/MLAssistant/feature"
	"github.com/ergocortex/MLAssistant/tree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

/*
DecisionTree is a tree that predicts the class of samples. Its leaves are
labelled with class values and its internal nodes with the name of the
attribute they split samples on.
*/
type DecisionTree struct {
	*tree.Tree
	Criterion Criterion
	options   options
}

/*
NewDecisionTree takes a Criterion and a list of options and returns an empty
DecisionTree that selects attributes with the criterion when trained.
*/
func NewDecisionTree(c Criterion, opts ...Option) *DecisionTree {
	return &DecisionTree{tree.New(), c, newOptions(opts)}
}

/*
Train takes a frame and grows the tree from its rows, replacing any previous
content. The last column of the frame is the class to predict and the rest
are the attributes to split on.

Starting at the root with every row and attribute, each node becomes a leaf
labelled with the class mode of its rows when they share a class, no
attributes are left or the maximum depth is reached. Otherwise it is labelled
with the attribute selected by the tree's criterion, which is no longer
eligible under it, and gets a child for every partition of its rows by that
attribute. Children for empty partitions are leaves labelled with the class
mode of the node's rows.

ErrEmptyInput is returned if the frame has no rows or no attributes.
*/
func (dt *DecisionTree) Train(f *dataset.Frame) error {
	if f.RowCount() == 0 || len(f.Attributes()) == 0 {
		return ErrEmptyInput
	}
	dt.Clear()
	g := &grower{dt.Tree, f, dt.Criterion, dt.options}
	_, err := g.branchOut(nil, f.Attributes(), 0)
	if err != nil {
		dt.Clear()
		return err
	}
	err = g.finish()
	if err != nil {
		dt.Clear()
		return err
	}
	dt.options.logger.WithFields(logrus.Fields{
		"criterion": dt.Criterion,
		"rows":      f.RowCount(),
		"nodes":     dt.Len(),
	}).Info("decision tree grown")
	return nil
}

type grower struct {
	t         *tree.Tree
	frame     *dataset.Frame
	criterion Criterion
	options   options
}

func (g *grower) addNode() (*tree.Node, error) {
	if g.options.maxNodes > 0 && g.options.nodesExceeded(g.t.Len()) {
		return nil, errors.Wrapf(ErrTreeTooLarge, "%d nodes", g.options.maxNodes)
	}
	return g.t.AddNode(), nil
}

func (g *grower) addLeaf(label feature.Value) (*tree.Node, error) {
	n, err := g.addNode()
	if err != nil {
		return nil, err
	}
	n.Leaf = true
	n.Label = label
	return n, nil
}

func (g *grower) branchOut(rows []int, eligible []string, depth int) (tree.NodeID, error) {
	class := g.frame.Class()
	if class.IsUniform(rows) || len(eligible) == 0 || g.options.depthReached(depth) {
		n, err := g.addLeaf(class.Mode(rows))
		if err != nil {
			return tree.NoNode, err
		}
		return n.ID, nil
	}
	n, err := g.addNode()
	if err != nil {
		return tree.NoNode, err
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
	}).Debug("splitting node")
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
			child, err = g.branchOut(p.Rows, remaining, depth+1)
			if err != nil {
				return tree.NoNode, err
			}
		}
		g.t.AddEdge(p.Value, p.Proportion, p.Operator, n.ID, child)
	}
	return n.ID, nil
}

func (g *grower) finish() error {
	err := g.t.RankHierarchy()
	if err != nil {
		return err
	}
	if g.options.prune {
		return g.t.Prune(g.t.Root())
	}
	return nil
}

// without returns a copy of names without the given one
func without(names []string, name string) []string {
	result := make([]string, 0, len(names))
	for _, n := range names {
		if n != name {
			result = append(result, n)
		}
	}
	return result
}

func selectionSize(rows []int, f *dataset.Frame) int {
	if rows == nil {
		return f.RowCount()
	}
	return len(rows)
}
