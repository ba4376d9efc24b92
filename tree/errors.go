package tree

// Error represents an error on the structure of a tree
type Error string

func (e Error) Error() string {
	return string(e)
}

/*
ErrStructuralInvariant is returned when the nodes and edges of a tree are
inconsistent with each other or with its hierarchy records, for instance when
an edge points to a removed node or the hierarchy has not been ranked since
the last mutation.
*/
const ErrStructuralInvariant = Error("tree structural invariant violated")

/*
ErrNotTrained is returned when predicting or aggregating over a tree without
nodes.
*/
const ErrNotTrained = Error("tree has no nodes")
