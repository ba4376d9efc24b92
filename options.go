package mlassistant

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"
)

/*
Option configures the growth of a DecisionTree or a ProbabilityTree.
*/
type Option func(*options)

type options struct {
	maxDepth int
	maxNodes int
	prune    bool
	logger   logrus.FieldLogger
}

func newOptions(opts []Option) options {
	o := options{logger: discardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

/*
MaxDepth takes an int and returns an Option that stops the expansion of nodes
at that depth, the root being at depth 0. Nodes at the maximum depth become
leaves. 0, the default, means no limit.
*/
func MaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

/*
MaxNodes takes an int and returns an Option that aborts training with
ErrTreeTooLarge when the tree would exceed that number of nodes. 0, the
default, means no limit.
*/
func MaxNodes(n int) Option {
	return func(o *options) {
		o.maxNodes = n
	}
}

/*
Pruned returns an Option that prunes pass-through nodes, those with a single
child, from the tree once it is grown.
*/
func Pruned() Option {
	return func(o *options) {
		o.prune = true
	}
}

// WithLogger returns an Option that makes training log to the given logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func (o options) depthReached(depth int) bool {
	return o.maxDepth > 0 && depth >= o.maxDepth
}

func (o options) nodesExceeded(nodes int) bool {
	return o.maxNodes > 0 && nodes >= o.maxNodes
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	return l
}
