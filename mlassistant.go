/*
Package mlassistant grows decision trees and probability trees from the rows
of a dataset.Frame.

A DecisionTree classifies samples: it is grown until the rows reaching a node
share a class or no attribute is left to split them. A ProbabilityTree
enumerates every combination of attribute values and turns the class
distribution under each of them into probability clusters.

Both are grown by recursive induction, choosing at every node the attribute
that scores best under a Criterion.
*/
package mlassistant

// Error represents an error training or validating a tree
type Error string

func (e Error) Error() string {
	return string(e)
}

/*
ErrEmptyInput is returned when training on a frame without rows or without
attributes besides the class.
*/
const ErrEmptyInput = Error("no rows or attributes to train on")

/*
ErrTreeTooLarge is returned when training would grow a tree beyond the
maximum number of nodes allowed.
*/
const ErrTreeTooLarge = Error("tree exceeds maximum number of nodes")
