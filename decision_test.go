package mlassistant

import (
	"bytes"
	"testing"

	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/ergocortex/MLAssistant/feature"
	"github.com/ergocortex/MLAssistant/tree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depth(t *tree.Tree, id tree.NodeID) int {
	d := 0
	for {
		h, _ := t.Hierarchy(id)
		if h.Parent == tree.NoNode {
			return d
		}
		id = h.Parent
		d++
	}
}

func assertWeightsSumToOne(t *testing.T, tr *tree.Tree) {
	for _, n := range tr.Nodes() {
		h, ok := tr.Hierarchy(n.ID)
		require.True(t, ok)
		if n.Leaf {
			assert.Empty(t, h.Edges)
			continue
		}
		var sum float64
		for _, eID := range h.Edges {
			sum += tr.Edge(eID).Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "node %d", n.ID)
	}
}

func TestDecisionTreeLearnsAnd(t *testing.T) {
	f := andFrame(t)
	for _, c := range []Criterion{InformationGain, GiniImpurity, GainRatio} {
		dt := NewDecisionTree(c)
		require.NoError(t, dt.Train(f))
		assert.Equal(t, feature.Text("A"), dt.Node(dt.Root()).Label, c.String())
		assert.Equal(t, 5, dt.Len(), c.String())
		for row := 0; row < f.RowCount(); row++ {
			p, err := dt.Predict(f.Row(row))
			require.NoError(t, err)
			v, ok := p.Value()
			require.True(t, ok)
			assert.Equal(t, f.Class().Cell(row), v, "%s row %d", c, row)
		}
		assertWeightsSumToOne(t, dt.Tree)
	}
}

func TestDecisionTreeSingleRow(t *testing.T) {
	f, err := dataset.NewFrame(
		dataset.NewTextColumn("x", "a"),
		dataset.NewTextColumn("class", "yes"),
	)
	require.NoError(t, err)
	dt := NewDecisionTree(InformationGain)
	require.NoError(t, dt.Train(f))
	assert.Equal(t, 1, dt.Len())
	assert.Empty(t, dt.Edges())
	root := dt.Node(dt.Root())
	assert.True(t, root.Leaf)
	assert.Equal(t, feature.Text("yes"), root.Label)
}

func TestDecisionTreeLeavesAreUniformOrExhausted(t *testing.T) {
	f := weatherFrame(t)
	for _, c := range []Criterion{InformationGain, GiniImpurity, GainRatio} {
		dt := NewDecisionTree(c)
		require.NoError(t, dt.Train(f))
		assertWeightsSumToOne(t, dt.Tree)

		reaching := make(map[tree.NodeID][]int)
		for row := 0; row < f.RowCount(); row++ {
			p, err := dt.Predict(f.Row(row))
			require.NoError(t, err)
			require.Equal(t, tree.Classified, p.Outcome)
			reaching[p.Node.ID] = append(reaching[p.Node.ID], row)
		}
		for id, rows := range reaching {
			uniform := f.Class().IsUniform(rows)
			exhausted := depth(dt.Tree, id) == len(f.Attributes())
			assert.True(t, uniform || exhausted, "%s leaf %d", c, id)
			if uniform {
				assert.Equal(t, f.Class().Mode(rows), dt.Node(id).Label)
			}
		}
	}
}

func TestDecisionTreeEmptyPartitionLeaf(t *testing.T) {
	f, err := dataset.NewFrame(
		dataset.NewIntColumn("x", false, 5, 5, 5, 1),
		dataset.NewTextColumn("class", "yes", "no", "no", "no"),
	)
	require.NoError(t, err)
	dt := NewDecisionTree(InformationGain)
	require.NoError(t, dt.Train(f))
	assertWeightsSumToOne(t, dt.Tree)
	assert.Equal(t, 3, dt.Len())

	h, _ := dt.Hierarchy(dt.Root())
	require.Len(t, h.Edges, 2)
	empty := dt.Edge(h.Edges[1])
	assert.Equal(t, feature.GreaterEqual, empty.Operator)
	assert.Equal(t, feature.Int(5), empty.Value)
	assert.Zero(t, empty.Weight)
	assert.True(t, dt.Node(empty.Target).Leaf)
	assert.Equal(t, feature.Text("no"), dt.Node(empty.Target).Label)
}

func TestDecisionTreeMaxDepth(t *testing.T) {
	f := weatherFrame(t)
	dt := NewDecisionTree(InformationGain, MaxDepth(1))
	require.NoError(t, dt.Train(f))
	assert.False(t, dt.Node(dt.Root()).Leaf)
	for _, n := range dt.Nodes() {
		assert.LessOrEqual(t, depth(dt.Tree, n.ID), 1)
		if n.ID != dt.Root() {
			assert.True(t, n.Leaf)
		}
	}
}

func TestDecisionTreeMaxNodes(t *testing.T) {
	f := weatherFrame(t)
	dt := NewDecisionTree(InformationGain, MaxNodes(3))
	err := dt.Train(f)
	assert.True(t, errors.Is(err, ErrTreeTooLarge))
	assert.Equal(t, 0, dt.Len())

	dt = NewDecisionTree(InformationGain, MaxNodes(5))
	require.NoError(t, dt.Train(andFrame(t)))
	assert.Equal(t, 5, dt.Len())
}

func TestDecisionTreeWideAttribute(t *testing.T) {
	const rows = 20000
	ids := make([]int64, rows)
	classes := make([]string, rows)
	for i := range ids {
		ids[i] = int64(i)
		classes[i] = []string{"a", "b"}[i%2]
	}
	f, err := dataset.NewFrame(dataset.NewIntColumn("id", true, ids...), dataset.NewTextColumn("class", classes...))
	require.NoError(t, err)

	dt := NewDecisionTree(InformationGain)
	require.NoError(t, dt.Train(f))
	assert.Equal(t, rows+1, dt.Len())
	assert.Len(t, dt.Nodes(), dt.Len())
}

func TestDecisionTreeEmptyInput(t *testing.T) {
	empty, err := dataset.NewFrame(dataset.NewBoolColumn("a"), dataset.NewBoolColumn("c"))
	require.NoError(t, err)
	assert.Equal(t, ErrEmptyInput, NewDecisionTree(InformationGain).Train(empty))

	classOnly, err := dataset.NewFrame(dataset.NewBoolColumn("c", true, false))
	require.NoError(t, err)
	assert.Equal(t, ErrEmptyInput, NewDecisionTree(InformationGain).Train(classOnly))
}

func TestDecisionTreePruned(t *testing.T) {
	f, err := dataset.NewFrame(
		dataset.NewTextColumn("constant", "k", "k", "k"),
		dataset.NewBoolColumn("class", true, false, false),
	)
	require.NoError(t, err)

	dt := NewDecisionTree(InformationGain)
	require.NoError(t, dt.Train(f))
	assert.Equal(t, 2, dt.Len())

	dt = NewDecisionTree(InformationGain, Pruned())
	require.NoError(t, dt.Train(f))
	assert.Equal(t, 1, dt.Len())
	root := dt.Node(dt.Root())
	assert.True(t, root.Leaf)
	assert.Equal(t, feature.Bool(false), root.Label)
}

func TestDecisionTreeRetrainReplacesTree(t *testing.T) {
	dt := NewDecisionTree(InformationGain)
	require.NoError(t, dt.Train(weatherFrame(t)))
	require.NoError(t, dt.Train(andFrame(t)))
	assert.Equal(t, 5, dt.Len())
	assert.Equal(t, tree.NodeID(0), dt.Root())
}

func TestDecisionTreeLogsSplits(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	dt := NewDecisionTree(InformationGain, WithLogger(l))
	require.NoError(t, dt.Train(andFrame(t)))
	assert.Contains(t, buf.String(), "splitting node")
	assert.Contains(t, buf.String(), "attribute=A")
	assert.Contains(t, buf.String(), "decision tree grown")
}
