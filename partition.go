package mlassistant

import (
	"fmt"
	"math"
	"strings"

	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

/*
Criterion is a measure of how well partitioning rows by an attribute
separates their classes.
*/
type Criterion int

const (
	// InformationGain prefers the attribute that most reduces the class entropy
	InformationGain Criterion = iota
	// GiniImpurity prefers the attribute that leaves the lowest weighted Gini
	// index in its partitions
	GiniImpurity
	// GainRatio prefers the attribute with the highest information gain
	// relative to the entropy of its own partition sizes
	GainRatio
)

func (c Criterion) String() string {
	switch c {
	case InformationGain:
		return "information-gain"
	case GiniImpurity:
		return "gini-impurity"
	case GainRatio:
		return "gain-ratio"
	}
	return fmt.Sprintf("Criterion(%d)", int(c))
}

/*
ParseCriterion takes a string and returns the Criterion it names as returned
by Criterion.String, or an error.
*/
func ParseCriterion(s string) (Criterion, error) {
	for _, c := range []Criterion{InformationGain, GiniImpurity, GainRatio} {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown criterion %q", s)
}

/*
AttributeScore is the score of a candidate attribute under a Criterion.
Degenerate is set by GainRatio for attributes whose partitions carry no
information, which cannot be selected.
*/
type AttributeScore struct {
	Attribute  string
	Score      float64
	Degenerate bool
}

/*
Scores takes a frame, a slice of row indexes (nil for every row), a slice of
eligible attribute names and the number of trailing columns of the frame
holding classes, and returns the score of every candidate: every eligible
column of the frame but the trailing class ones, in frame order. Scores are
computed for the last column of the frame as class.
*/
func (c Criterion) Scores(f *dataset.Frame, rows []int, eligible []string, classes int) ([]AttributeScore, error) {
	columns := f.Columns()
	if classes < 0 || classes > len(columns) {
		return nil, fmt.Errorf("invalid number of class columns %d for frame with %d columns", classes, len(columns))
	}
	isEligible := make(map[string]bool, len(eligible))
	for _, name := range eligible {
		if _, err := f.ColumnIndexByName(name); err != nil {
			return nil, err
		}
		isEligible[name] = true
	}
	class := f.Class()
	var scores []AttributeScore
	for _, col := range columns[:len(columns)-classes] {
		if !isEligible[col.Name()] {
			continue
		}
		partitions := col.ProbabilityDistribution(rows)
		score := AttributeScore{Attribute: col.Name()}
		switch c {
		case InformationGain:
			score.Score = informationGain(class, rows, partitions)
		case GiniImpurity:
			score.Score = weightedGini(class, partitions)
		case GainRatio:
			splitEntropy := splitInformation(partitions)
			if splitEntropy <= 0 {
				score.Degenerate = true
			} else {
				score.Score = informationGain(class, rows, partitions) / splitEntropy
			}
		default:
			return nil, fmt.Errorf("unknown criterion %v", c)
		}
		scores = append(scores, score)
	}
	return scores, nil
}

/*
Select takes the same parameters as Scores and returns the name of the
candidate attribute with the best score: the highest for InformationGain and
GainRatio, the lowest for GiniImpurity. Ties go to the candidate that comes
first in the frame.

Degenerate candidates are never selected by GainRatio. When every candidate
is degenerate, the selection is made by InformationGain instead.

An error wrapping ErrEmptyInput is returned when there are no candidates.
*/
func (c Criterion) Select(f *dataset.Frame, rows []int, eligible []string, classes int) (string, error) {
	scores, err := c.Scores(f, rows, eligible, classes)
	if err != nil {
		return "", err
	}
	if len(scores) == 0 {
		return "", errors.Wrap(ErrEmptyInput, "selecting attribute: no candidates")
	}
	best := -1
	for i, s := range scores {
		if s.Degenerate {
			continue
		}
		if best < 0 || c.better(s.Score, scores[best].Score) {
			best = i
		}
	}
	if best < 0 {
		return InformationGain.Select(f, rows, eligible, classes)
	}
	return scores[best].Attribute, nil
}

func (c Criterion) better(score, than float64) bool {
	if c == GiniImpurity {
		return score < than
	}
	return score > than
}

func informationGain(class dataset.Column, rows []int, partitions []dataset.Partition) float64 {
	gain := class.Entropy(rows)
	for _, p := range partitions {
		gain -= p.Proportion * class.Entropy(p.Rows)
	}
	return gain
}

func weightedGini(class dataset.Column, partitions []dataset.Partition) float64 {
	var gini float64
	for _, p := range partitions {
		gini += p.Proportion * class.GiniIndex(p.Rows)
	}
	return gini
}

func splitInformation(partitions []dataset.Partition) float64 {
	proportions := make([]float64, 0, len(partitions))
	for _, p := range partitions {
		proportions = append(proportions, p.Proportion)
	}
	return stat.Entropy(proportions) / math.Ln2
}
