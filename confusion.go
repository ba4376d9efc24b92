package mlassistant

import (
	"fmt"
	"sort"

	"github.com/ergocortex/MLAssistant/feature"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

/*
ConfusionMatrix counts predictions of a classifier by predicted and actual
class. Instances counts the classified samples of every actual class and
Unclassified the samples for which no class could be predicted.
*/
type ConfusionMatrix struct {
	Classes      []feature.Value
	Cells        [][]float64
	Instances    []float64
	Unclassified int
	index        map[feature.Value]int
}

/*
NewConfusionMatrix takes a slice of class values and returns an empty
confusion matrix for them, with classes sorted by value.
*/
func NewConfusionMatrix(classes []feature.Value) *ConfusionMatrix {
	sorted := append([]feature.Value{}, classes...)
	sort.Slice(sorted, func(i, j int) bool { return feature.SortsBefore(sorted[i], sorted[j]) })
	cm := &ConfusionMatrix{
		Classes:   sorted,
		Cells:     make([][]float64, len(sorted)),
		Instances: make([]float64, len(sorted)),
		index:     make(map[feature.Value]int, len(sorted)),
	}
	for i, c := range sorted {
		cm.Cells[i] = make([]float64, len(sorted))
		cm.index[c] = i
	}
	return cm
}

/*
Add takes a predicted and an actual class value and counts the prediction. An
error is returned if either value is not a class of the matrix.
*/
func (cm *ConfusionMatrix) Add(predicted, actual feature.Value) error {
	p, ok := cm.index[predicted]
	if !ok {
		return fmt.Errorf("predicted value %v is not a known class", predicted)
	}
	a, ok := cm.index[actual]
	if !ok {
		return fmt.Errorf("actual value %v is not a known class", actual)
	}
	cm.Cells[p][a]++
	cm.Instances[a]++
	return nil
}

// Cell returns the count for the given predicted and actual class values
func (cm *ConfusionMatrix) Cell(predicted, actual feature.Value) float64 {
	p, ok := cm.index[predicted]
	if !ok {
		return 0
	}
	a, ok := cm.index[actual]
	if !ok {
		return 0
	}
	return cm.Cells[p][a]
}

// Classified returns the sum of all cells
func (cm *ConfusionMatrix) Classified() float64 {
	var total float64
	for _, row := range cm.Cells {
		for _, c := range row {
			total += c
		}
	}
	return total
}

/*
Accuracy returns the share of classified samples whose prediction was right,
or 0 when no sample was classified.
*/
func (cm *ConfusionMatrix) Accuracy() float64 {
	total := cm.Classified()
	if total == 0 {
		return 0
	}
	var right float64
	for i := range cm.Cells {
		right += cm.Cells[i][i]
	}
	return right / total
}

/*
Normalize divides every cell and instance count by the given divisor, the
number of folds of a cross-validation for instance.
*/
func (cm *ConfusionMatrix) Normalize(divisor float64) {
	if divisor == 0 {
		return
	}
	for i := range cm.Cells {
		for j := range cm.Cells[i] {
			cm.Cells[i][j] /= divisor
		}
		cm.Instances[i] /= divisor
	}
}

func (cm *ConfusionMatrix) String() string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	header := table.Row{"predicted \\ actual"}
	for _, c := range cm.Classes {
		header = append(header, c.String())
	}
	w.AppendHeader(header)
	for i, c := range cm.Classes {
		row := table.Row{c.String()}
		for _, v := range cm.Cells[i] {
			row = append(row, formatCount(v))
		}
		w.AppendRow(row)
	}
	footer := table.Row{"instances"}
	for _, v := range cm.Instances {
		footer = append(footer, formatCount(v))
	}
	w.AppendFooter(footer)
	configs := make([]table.ColumnConfig, 0, len(cm.Classes))
	for i := range cm.Classes {
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	w.SetColumnConfigs(configs)
	return fmt.Sprintf("%s\nunclassified: %d\naccuracy: %.4f\n", w.Render(), cm.Unclassified, cm.Accuracy())
}

func formatCount(v float64) string {
	return feature.Float(v).String()
}
