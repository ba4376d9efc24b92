/*
Package mongodataset reads dataset.Frames from the documents of a MongoDB
collection.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/ergocortex/MLAssistant/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
DefaultCollection is the collection documents are read from when none is
given.
*/
const DefaultCollection = "samples"

// documents is satisfied by *mgo.Iter
type documents interface {
	Next(result interface{}) bool
	Close() error
}

/*
Load takes a context, a MongoDB session, the name of a collection in the
session's default database, a slice of features and the name of the class
feature, and returns a frame with a row for every document of the collection
matching the query. A nil query matches every document. Fields are matched to
features by name; other fields are ignored.
*/
func Load(ctx context.Context, session *mgo.Session, collection string, query bson.M, features []feature.Feature, class string) (*dataset.Frame, error) {
	if err := checkFeatureNames(features); err != nil {
		return nil, err
	}
	if collection == "" {
		collection = DefaultCollection
	}
	iter := session.DB("").C(collection).Find(query).Iter()
	return read(ctx, iter, features, class)
}

func read(ctx context.Context, docs documents, features []feature.Feature, class string) (*dataset.Frame, error) {
	b, err := dataset.NewBuilder(features, class)
	if err != nil {
		docs.Close()
		return nil, err
	}
	var doc bson.M
	for docs.Next(&doc) {
		if err = ctx.Err(); err != nil {
			docs.Close()
			return nil, err
		}
		if err = b.Add(doc); err != nil {
			docs.Close()
			return nil, fmt.Errorf("document %d: %v", b.Len()+1, err)
		}
		doc = nil
	}
	if err = docs.Close(); err != nil {
		return nil, fmt.Errorf("reading documents: %v", err)
	}
	return b.Frame()
}

func checkFeatureNames(features []feature.Feature) error {
	for _, f := range features {
		fName := f.Name()
		if fName == "_id" {
			return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(fName, ".$") {
			return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
	}
	return nil
}
