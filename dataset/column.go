package dataset

import (
	"math"
	"sort"

	"github.com/ergocortex/MLAssistant/feature"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

/*
Column represents a named series of values of a single kind aligned with the
rows of a Frame.

Every statistic takes a slice of row indexes restricting the rows it is
computed over. A nil slice selects every row of the column, whereas a non-nil
empty slice selects none.

IsUniform returns whether the selected rows hold at most one distinct value.

Mode returns the most frequent value among the selected rows, resolving ties
in favour of the smallest value, or nil when no rows are selected.

Entropy returns the entropy in bits of the distribution of values over the
selected rows, and GiniIndex its Gini index 1 - Σ p².

ProbabilityDistribution returns the partitions in which the column's feature
splits the selected rows.
*/
type Column interface {
	Feature() feature.Feature
	Name() string
	Size() int
	Cell(row int) feature.Value
	IsUniform(rows []int) bool
	Mode(rows []int) feature.Value
	Entropy(rows []int) float64
	GiniIndex(rows []int) float64
	ProbabilityDistribution(rows []int) []Partition
	subset(rows []int) Column
}

/*
Partition is a group of rows of a column sharing a comparison against a value.
Rows holds the indexes of the rows in the group and is never nil, and
Proportion is the share of the partitioned rows they represent.
*/
type Partition struct {
	Value      feature.Value
	Operator   feature.Operator
	Proportion float64
	Rows       []int
}

type typedColumn[T comparable] struct {
	feature feature.Feature
	values  []T
	wrap    func(T) feature.Value
	less    func(a, b T) bool
}

/*
NewColumn takes a feature and a slice of values and returns a column for the
feature holding the values, or an error if any of them is not valid for it.
*/
func NewColumn(f feature.Feature, values []feature.Value) (Column, error) {
	for i, v := range values {
		if err := f.Valid(v); err != nil {
			return nil, errors.Wrapf(err, "row %d of column %s", i, f.Name())
		}
	}
	switch f.Kind() {
	case feature.BoolKind:
		return &typedColumn[bool]{f, unwrap(values, func(v feature.Value) bool { return bool(v.(feature.Bool)) }), wrapBool, lessBool}, nil
	case feature.IntKind:
		return &typedColumn[int64]{f, unwrap(values, func(v feature.Value) int64 { return int64(v.(feature.Int)) }), wrapInt, lessOrdered[int64]}, nil
	case feature.FloatKind:
		return &typedColumn[float64]{f, unwrap(values, func(v feature.Value) float64 { return float64(v.(feature.Float)) }), wrapFloat, lessOrdered[float64]}, nil
	case feature.TextKind:
		return &typedColumn[string]{f, unwrap(values, func(v feature.Value) string { return string(v.(feature.Text)) }), wrapText, lessOrdered[string]}, nil
	}
	return nil, Error("unsupported kind " + f.Kind().String() + " for column " + f.Name())
}

// NewBoolColumn returns a column for a discrete boolean feature with the given name
func NewBoolColumn(name string, values ...bool) Column {
	return &typedColumn[bool]{feature.NewDiscreteFeature(name, feature.BoolKind, nil), values, wrapBool, lessBool}
}

// NewTextColumn returns a column for a discrete text feature with the given name
func NewTextColumn(name string, values ...string) Column {
	return &typedColumn[string]{feature.NewDiscreteFeature(name, feature.TextKind, nil), values, wrapText, lessOrdered[string]}
}

/*
NewIntColumn returns a column for an integer feature with the given name that
is discrete or continuous as requested.
*/
func NewIntColumn(name string, discrete bool, values ...int64) Column {
	var f feature.Feature = feature.NewContinuousFeature(name, feature.IntKind)
	if discrete {
		f = feature.NewDiscreteFeature(name, feature.IntKind, nil)
	}
	return &typedColumn[int64]{f, values, wrapInt, lessOrdered[int64]}
}

// NewFloatColumn returns a column for a continuous feature with the given name
func NewFloatColumn(name string, values ...float64) Column {
	return &typedColumn[float64]{feature.NewContinuousFeature(name, feature.FloatKind), values, wrapFloat, lessOrdered[float64]}
}

func (c *typedColumn[T]) Feature() feature.Feature {
	return c.feature
}

func (c *typedColumn[T]) Name() string {
	return c.feature.Name()
}

func (c *typedColumn[T]) Size() int {
	return len(c.values)
}

func (c *typedColumn[T]) Cell(row int) feature.Value {
	return c.wrap(c.values[row])
}

func (c *typedColumn[T]) IsUniform(rows []int) bool {
	keys, _, _ := c.count(rows)
	return len(keys) <= 1
}

func (c *typedColumn[T]) Mode(rows []int) feature.Value {
	keys, freq, _ := c.count(rows)
	if len(keys) == 0 {
		return nil
	}
	mode := keys[0]
	for _, k := range keys[1:] {
		if freq[k] > freq[mode] {
			mode = k
		}
	}
	return c.wrap(mode)
}

func (c *typedColumn[T]) Entropy(rows []int) float64 {
	p := c.probabilities(rows)
	if len(p) == 0 {
		return 0
	}
	return stat.Entropy(p) / math.Ln2
}

func (c *typedColumn[T]) GiniIndex(rows []int) float64 {
	p := c.probabilities(rows)
	if len(p) == 0 {
		return 0
	}
	return 1 - floats.Dot(p, p)
}

func (c *typedColumn[T]) ProbabilityDistribution(rows []int) []Partition {
	if c.feature.Discrete() {
		return c.discreteDistribution(rows)
	}
	return c.continuousDistribution(rows)
}

func (c *typedColumn[T]) discreteDistribution(rows []int) []Partition {
	keys, _, total := c.count(rows)
	if total == 0 {
		return []Partition{}
	}
	groups := make(map[T][]int, len(keys))
	c.each(rows, func(row int, v T) {
		groups[v] = append(groups[v], row)
	})
	partitions := make([]Partition, 0, len(keys))
	for _, k := range keys {
		partitions = append(partitions, Partition{
			Value:      c.wrap(k),
			Operator:   feature.Equal,
			Proportion: float64(len(groups[k])) / float64(total),
			Rows:       groups[k],
		})
	}
	return partitions
}

func (c *typedColumn[T]) continuousDistribution(rows []int) []Partition {
	var sorted []T
	c.each(rows, func(_ int, v T) {
		sorted = append(sorted, v)
	})
	switch len(sorted) {
	case 0:
		return []Partition{}
	case 1:
		return []Partition{{
			Value:      c.wrap(sorted[0]),
			Operator:   feature.Equal,
			Proportion: 1,
			Rows:       c.selection(rows),
		}}
	}
	sort.Slice(sorted, func(i, j int) bool { return c.less(sorted[i], sorted[j]) })
	median := sorted[(len(sorted)-1)/2]
	lower, upper := []int{}, []int{}
	c.each(rows, func(row int, v T) {
		if c.less(median, v) {
			upper = append(upper, row)
		} else {
			lower = append(lower, row)
		}
	})
	total := float64(len(sorted))
	return []Partition{
		{Value: c.wrap(median), Operator: feature.LessEqual, Proportion: float64(len(lower)) / total, Rows: lower},
		{Value: c.wrap(median), Operator: feature.GreaterEqual, Proportion: float64(len(upper)) / total, Rows: upper},
	}
}

func (c *typedColumn[T]) subset(rows []int) Column {
	values := make([]T, 0, len(rows))
	for _, row := range rows {
		values = append(values, c.values[row])
	}
	return &typedColumn[T]{c.feature, values, c.wrap, c.less}
}

// count returns the distinct values among the selected rows in ascending
// order, their frequencies and the number of selected rows.
func (c *typedColumn[T]) count(rows []int) ([]T, map[T]int, int) {
	freq := make(map[T]int)
	total := 0
	c.each(rows, func(_ int, v T) {
		freq[v]++
		total++
	})
	keys := make([]T, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return c.less(keys[i], keys[j]) })
	return keys, freq, total
}

func (c *typedColumn[T]) probabilities(rows []int) []float64 {
	keys, freq, total := c.count(rows)
	p := make([]float64, 0, len(keys))
	for _, k := range keys {
		p = append(p, float64(freq[k])/float64(total))
	}
	return p
}

func (c *typedColumn[T]) each(rows []int, f func(row int, v T)) {
	if rows == nil {
		for i, v := range c.values {
			f(i, v)
		}
		return
	}
	for _, row := range rows {
		f(row, c.values[row])
	}
}

func (c *typedColumn[T]) selection(rows []int) []int {
	if rows != nil {
		return append([]int{}, rows...)
	}
	all := make([]int, len(c.values))
	for i := range all {
		all[i] = i
	}
	return all
}

func unwrap[T any](values []feature.Value, f func(feature.Value) T) []T {
	result := make([]T, 0, len(values))
	for _, v := range values {
		result = append(result, f(v))
	}
	return result
}

type ordered interface {
	~int64 | ~float64 | ~string
}

func lessOrdered[T ordered](a, b T) bool {
	return a < b
}

func lessBool(a, b bool) bool {
	return !a && b
}

func wrapBool(v bool) feature.Value {
	return feature.Bool(v)
}

func wrapInt(v int64) feature.Value {
	return feature.Int(v)
}

func wrapFloat(v float64) feature.Value {
	return feature.Float(v)
}

func wrapText(v string) feature.Value {
	return feature.Text(v)
}
