package mlassistant

import (
	"fmt"

	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/ergocortex/MLAssistant/feature"
	"github.com/ergocortex/MLAssistant/tree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

/*
Fold is a contiguous block of rows [Start, End) used to validate a tree
trained on the rest.
*/
type Fold struct {
	Start, End int
}

// Rows returns the indexes of the rows in the fold
func (f Fold) Rows() []int {
	rows := make([]int, 0, f.End-f.Start)
	for i := f.Start; i < f.End; i++ {
		rows = append(rows, i)
	}
	return rows
}

// Complement returns the indexes of the rows in [0, n) outside the fold
func (f Fold) Complement(n int) []int {
	rows := make([]int, 0, n-(f.End-f.Start))
	for i := 0; i < n; i++ {
		if i < f.Start || i >= f.End {
			rows = append(rows, i)
		}
	}
	return rows
}

/*
Folds takes a number of rows n and a number of folds k and splits [0, n) into
contiguous blocks of ceil(n/k) rows, the last one truncated to the remaining
rows. Fewer than k blocks are returned when ceil(n/k) rows per block cover all
rows earlier. An error is returned unless 2 <= k <= n.
*/
func Folds(n, k int) ([]Fold, error) {
	if k < 2 || k > n {
		return nil, fmt.Errorf("cannot split %d rows in %d folds", n, k)
	}
	size := (n + k - 1) / k
	folds := make([]Fold, 0, k)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		folds = append(folds, Fold{start, end})
	}
	return folds, nil
}

/*
CrossValidate takes a frame and a number of folds k and performs a k-fold
cross-validation of the tree's criterion and options on the frame: for every
fold returned by Folds, a disposable tree is trained on the rows outside the
fold and used to predict the rows in it. The returned confusion matrix holds
raw counts over the class values of the frame. Samples whose prediction does
not reach a leaf are counted as unclassified.

The receiving tree is not modified.
*/
func (dt *DecisionTree) CrossValidate(f *dataset.Frame, k int) (*ConfusionMatrix, error) {
	folds, err := Folds(f.RowCount(), k)
	if err != nil {
		return nil, err
	}
	class := f.Class()
	cm := NewConfusionMatrix(distinctValues(class))
	for i, fold := range folds {
		foldTree := &DecisionTree{tree.New(), dt.Criterion, dt.options}
		err = foldTree.Train(f.SubFrame(fold.Complement(f.RowCount())))
		if err != nil {
			return nil, errors.Wrapf(err, "training fold %d", i)
		}
		for _, row := range fold.Rows() {
			p, err := foldTree.Predict(f.Row(row))
			if err != nil {
				return nil, errors.Wrapf(err, "predicting row %d in fold %d", row, i)
			}
			predicted, ok := p.Value()
			if !ok {
				cm.Unclassified++
				continue
			}
			if err = cm.Add(predicted, class.Cell(row)); err != nil {
				return nil, errors.Wrapf(err, "row %d in fold %d", row, i)
			}
		}
		dt.options.logger.WithFields(logrus.Fields{
			"fold":  i,
			"start": fold.Start,
			"end":   fold.End,
		}).Debug("fold validated")
	}
	dt.options.logger.WithFields(logrus.Fields{
		"folds":        len(folds),
		"accuracy":     cm.Accuracy(),
		"unclassified": cm.Unclassified,
	}).Info("cross-validation finished")
	return cm, nil
}

func distinctValues(c dataset.Column) []feature.Value {
	seen := make(map[feature.Value]bool)
	var values []feature.Value
	for i := 0; i < c.Size(); i++ {
		v := c.Cell(i)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}
