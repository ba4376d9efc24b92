package tree

import (
	"testing"

	"github.com/ergocortex/MLAssistant/feature"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func internal(t *Tree, attribute string) NodeID {
	n := t.AddNode()
	n.Label = feature.Text(attribute)
	return n.ID
}

func leaf(t *Tree, label string) NodeID {
	n := t.AddNode()
	n.Leaf = true
	n.Label = feature.Text(label)
	return n.ID
}

// weatherTree returns the tree
//
//	outlook = sunny (0.4)    -> windy = true (0.5) -> no
//	                            windy = false (0.5) -> yes
//	outlook = overcast (0.3) -> yes
//	outlook = rain (0.3)     -> no
func weatherTree(t *testing.T) *Tree {
	tr := New()
	root := internal(tr, "outlook")
	windy := internal(tr, "windy")
	overcast := leaf(tr, "yes")
	rain := leaf(tr, "no")
	windyTrue := leaf(tr, "no")
	windyFalse := leaf(tr, "yes")
	tr.AddEdge(feature.Text("sunny"), 0.4, feature.Equal, root, windy)
	tr.AddEdge(feature.Text("overcast"), 0.3, feature.Equal, root, overcast)
	tr.AddEdge(feature.Text("rain"), 0.3, feature.Equal, root, rain)
	tr.AddEdge(feature.Bool(true), 0.5, feature.Equal, windy, windyTrue)
	tr.AddEdge(feature.Bool(false), 0.5, feature.Equal, windy, windyFalse)
	require.NoError(t, tr.RankHierarchy())
	return tr
}

func hierarchies(tr *Tree) map[NodeID]Hierarchy {
	result := make(map[NodeID]Hierarchy)
	for _, n := range tr.Nodes() {
		h, _ := tr.Hierarchy(n.ID)
		result[n.ID] = h
	}
	return result
}

func TestRankHierarchy(t *testing.T) {
	tr := weatherTree(t)
	assert.Equal(t, NodeID(0), tr.Root())
	h, ok := tr.Hierarchy(0)
	require.True(t, ok)
	assert.Equal(t, NoNode, h.Parent)
	assert.Equal(t, []EdgeID{0, 1, 2}, h.Edges)
	assert.Equal(t, []NodeID{4, 5}, tr.Children(1))

	for _, n := range tr.Nodes() {
		h, _ := tr.Hierarchy(n.ID)
		if n.Leaf {
			assert.Empty(t, h.Edges)
		}
	}
}

func TestRankHierarchyIsIdempotent(t *testing.T) {
	tr := weatherTree(t)
	first := hierarchies(tr)
	require.NoError(t, tr.RankHierarchy())
	assert.Equal(t, first, hierarchies(tr))
}

func TestRankHierarchyDetectsInconsistencies(t *testing.T) {
	tr := New()
	root := internal(tr, "a")
	tr.AddEdge(feature.Bool(true), 1, feature.Equal, root, 7)
	assert.True(t, errors.Is(tr.RankHierarchy(), ErrStructuralInvariant))

	tr = New()
	internal(tr, "a")
	leaf(tr, "orphan")
	assert.True(t, errors.Is(tr.RankHierarchy(), ErrStructuralInvariant))

	tr = New()
	root = internal(tr, "a")
	child := leaf(tr, "x")
	tr.AddEdge(feature.Bool(true), 0.5, feature.Equal, root, child)
	tr.AddEdge(feature.Bool(false), 0.5, feature.Equal, root, child)
	assert.True(t, errors.Is(tr.RankHierarchy(), ErrStructuralInvariant))
}

func TestPredict(t *testing.T) {
	tr := weatherTree(t)

	p, err := tr.Predict(feature.Row{"outlook": feature.Text("sunny"), "windy": feature.Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, Classified, p.Outcome)
	v, ok := p.Value()
	assert.True(t, ok)
	assert.Equal(t, feature.Text("yes"), v)

	p, err = tr.Predict(feature.Row{"outlook": feature.Text("rain")})
	require.NoError(t, err)
	assert.Equal(t, feature.Text("no"), p.Node.Label)
}

func TestPredictUnclassifiable(t *testing.T) {
	tr := weatherTree(t)
	p, err := tr.Predict(feature.Row{"outlook": feature.Text("snow")})
	require.NoError(t, err)
	assert.Equal(t, Unclassifiable, p.Outcome)
	assert.Equal(t, tr.Root(), p.Node.ID)
	_, ok := p.Value()
	assert.False(t, ok)
}

func TestPredictUnknownAttribute(t *testing.T) {
	tr := weatherTree(t)
	p, err := tr.Predict(feature.Row{"outlook": feature.Text("sunny")})
	require.NoError(t, err)
	assert.Equal(t, UnknownAttribute, p.Outcome)
	assert.Equal(t, "windy", p.Attribute)
	assert.Equal(t, NodeID(1), p.Node.ID)
}

func TestPredictErrors(t *testing.T) {
	tr := weatherTree(t)
	_, err := tr.Predict(feature.Row{"outlook": feature.Int(1)})
	assert.True(t, errors.Is(err, feature.ErrKindMismatch))

	_, err = New().Predict(feature.Row{})
	assert.Equal(t, ErrNotTrained, err)

	leaf(tr, "x")
	_, err = tr.Predict(feature.Row{"outlook": feature.Text("rain")})
	assert.True(t, errors.Is(err, ErrStructuralInvariant))
}

func TestPredictContinuousEdges(t *testing.T) {
	tr := New()
	root := internal(tr, "x")
	low := leaf(tr, "low")
	high := leaf(tr, "high")
	tr.AddEdge(feature.Float(3), 0.6, feature.LessEqual, root, low)
	tr.AddEdge(feature.Float(3), 0.4, feature.GreaterEqual, root, high)
	require.NoError(t, tr.RankHierarchy())

	for x, expected := range map[float64]string{1: "low", 3: "low", 3.5: "high"} {
		p, err := tr.Predict(feature.Row{"x": feature.Float(x)})
		require.NoError(t, err)
		assert.Equal(t, feature.Text(expected), p.Node.Label, "x = %v", x)
	}
}

func TestPrune(t *testing.T) {
	tr := New()
	a := internal(tr, "a")
	b := internal(tr, "b")
	x := leaf(tr, "x")
	c := internal(tr, "c")
	y := leaf(tr, "y")
	tr.AddEdge(feature.Bool(true), 1, feature.Equal, a, b)
	tr.AddEdge(feature.Bool(true), 0.5, feature.Equal, b, x)
	bc := tr.AddEdge(feature.Bool(false), 0.5, feature.Equal, b, c)
	tr.AddEdge(feature.Int(2), 1, feature.Equal, c, y)
	require.NoError(t, tr.RankHierarchy())

	require.NoError(t, tr.Prune(tr.Root()))

	assert.Equal(t, b, tr.Root())
	assert.Nil(t, tr.Node(a))
	assert.Nil(t, tr.Node(c))
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, y, tr.Edge(bc.ID).Target)
	h, ok := tr.Hierarchy(y)
	require.True(t, ok)
	assert.Equal(t, b, h.Parent)
	h, _ = tr.Hierarchy(b)
	assert.Equal(t, NoNode, h.Parent)

	reached := 0
	require.NoError(t, tr.Traverse(false, func(*Node) error {
		reached++
		return nil
	}))
	assert.Equal(t, tr.Len(), reached)

	before := hierarchies(tr)
	require.NoError(t, tr.RankHierarchy())
	assert.Equal(t, before, hierarchies(tr))

	p, err := tr.Predict(feature.Row{"b": feature.Bool(false), "c": feature.Int(5)})
	require.NoError(t, err)
	assert.Equal(t, feature.Text("y"), p.Node.Label)
}

func TestLenCountsLiveNodes(t *testing.T) {
	tr := New()
	assert.Equal(t, 0, tr.Len())
	a := internal(tr, "a")
	b := internal(tr, "b")
	tr.AddEdge(feature.Bool(true), 1, feature.Equal, a, b)
	tr.AddEdge(feature.Bool(true), 1, feature.Equal, b, leaf(tr, "x"))
	assert.Equal(t, 3, tr.Len())
	require.NoError(t, tr.RankHierarchy())

	require.NoError(t, tr.Prune(tr.Root()))
	assert.Equal(t, 1, tr.Len())
	assert.Len(t, tr.Nodes(), tr.Len())

	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	leaf(tr, "y")
	assert.Equal(t, 1, tr.Len())
}

type countingSample struct {
	feature.Row
	asked map[string]int
}

func (s *countingSample) ValueFor(attribute string) (feature.Value, bool) {
	s.asked[attribute]++
	return s.Row.ValueFor(attribute)
}

func TestPredictEvaluatesEdgeCriteria(t *testing.T) {
	tr := weatherTree(t)
	s := &countingSample{feature.Row{"outlook": feature.Text("rain")}, map[string]int{}}
	p, err := tr.Predict(s)
	require.NoError(t, err)
	assert.Equal(t, feature.Text("no"), p.Node.Label)
	assert.Equal(t, 3, s.asked["outlook"])

	for _, e := range tr.Edges() {
		if e.Source != tr.Root() {
			continue
		}
		ok, err := e.Criterion("outlook").SatisfiedBy(feature.Row{"outlook": feature.Text("rain")})
		require.NoError(t, err)
		assert.Equal(t, e.Value == feature.Text("rain"), ok)
	}
}

func TestPruneKeepsBranchingNodes(t *testing.T) {
	tr := weatherTree(t)
	before := hierarchies(tr)
	require.NoError(t, tr.Prune(tr.Root()))
	assert.Equal(t, before, hierarchies(tr))
	assert.Equal(t, 6, tr.Len())
}

func TestPruneUnranked(t *testing.T) {
	tr := New()
	internal(tr, "a")
	assert.True(t, errors.Is(tr.Prune(0), ErrStructuralInvariant))
}

func TestProbabilityClusters(t *testing.T) {
	tr := weatherTree(t)
	clusters, err := tr.ProbabilityClusters()
	require.NoError(t, err)
	require.Len(t, clusters, 2)

	assert.Equal(t, feature.Text("no"), clusters[0].Value)
	assert.InDelta(t, 0.5, clusters[0].Probability, 1e-9)
	assert.Equal(t, []NodeID{4, 3}, clusters[0].Nodes)

	assert.Equal(t, feature.Text("yes"), clusters[1].Value)
	assert.InDelta(t, 0.5, clusters[1].Probability, 1e-9)
	assert.Equal(t, []NodeID{5, 2}, clusters[1].Nodes)
}

func TestAccumulateProbabilityClustersFromSubtree(t *testing.T) {
	tr := weatherTree(t)
	clusters := []ProbabilityCluster{{Value: feature.Text("yes"), Probability: 0.1, Nodes: []NodeID{}}}
	require.NoError(t, tr.AccumulateProbabilityClusters(1, &clusters, 0.4))
	require.Len(t, clusters, 2)
	assert.InDelta(t, 0.3, clusters[0].Probability, 1e-9)
	assert.Equal(t, feature.Text("no"), clusters[1].Value)
	assert.InDelta(t, 0.2, clusters[1].Probability, 1e-9)
}

func TestTraverse(t *testing.T) {
	tr := weatherTree(t)
	var topdown, bottomup []NodeID
	require.NoError(t, tr.Traverse(false, func(n *Node) error {
		topdown = append(topdown, n.ID)
		return nil
	}))
	require.NoError(t, tr.Traverse(true, func(n *Node) error {
		bottomup = append(bottomup, n.ID)
		return nil
	}))
	assert.Equal(t, []NodeID{0, 1, 4, 5, 2, 3}, topdown)
	assert.Equal(t, []NodeID{4, 5, 1, 2, 3, 0}, bottomup)

	err := tr.Traverse(false, func(n *Node) error {
		if n.Leaf {
			return assert.AnError
		}
		return nil
	})
	assert.Equal(t, assert.AnError, err)
}

func TestStringAndClear(t *testing.T) {
	tr := weatherTree(t)
	s := tr.String()
	assert.Contains(t, s, "|__[1]")
	assert.Contains(t, s, "{ outlook = sunny (0.40) }")
	assert.Contains(t, s, "{ windy = false (0.50) }")

	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, NoNode, tr.Root())
	assert.Equal(t, "[empty]\n", tr.String())
}
