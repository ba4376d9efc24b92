/*
Package yaml provides methods to parse feature.Feature specifications
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/ergocortex/MLAssistant/feature"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadFeatures takes a slice of bytes with a feature specification in YML and
returns a slice of features parsed from it or an error.

The YML is expected to be an object containing a features property. The value
for this should be an object with a property for each feature with its name
and either a string naming the kind of the feature or a list of valid values
for discrete features. Valid kind names are:
  * continuous or float: a continuous feature with floating-point values
  * int or integer: a continuous feature with integer values
  * bool or boolean: a discrete feature with boolean values
  * text, string or discrete: a discrete feature with any text value
A list of values declares a discrete feature whose kind is bool or int when
every value in the list is of that kind, and text otherwise.

Features are returned in the order they are declared.
*/
func ReadFeatures(md []byte) ([]feature.Feature, error) {
	metadata := struct {
		Features yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml features")
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	features := make([]feature.Feature, 0, len(metadata.Features))
	for _, item := range metadata.Features {
		fn := fmt.Sprintf("%v", item.Key)
		switch values := item.Value.(type) {
		case string:
			f, err := kindFeature(fn, values)
			if err != nil {
				return nil, err
			}
			features = append(features, f)
		case []interface{}:
			features = append(features, listFeature(fn, values))
		default:
			return nil, fmt.Errorf("invalid declaration of type %T for feature %s", item.Value, fn)
		}
	}
	return features, nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return a slice of parsed features or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) ([]feature.Feature, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading features yml file %s", filepath)
	}
	features, err := ReadFeatures(md)
	if err != nil {
		err = errors.Wrapf(err, "parsing features yml file %s", filepath)
	}
	return features, err
}

func kindFeature(name, kind string) (feature.Feature, error) {
	switch strings.ToLower(kind) {
	case "continuous", "float":
		return feature.NewContinuousFeature(name, feature.FloatKind), nil
	case "int", "integer":
		return feature.NewContinuousFeature(name, feature.IntKind), nil
	}
	k, err := feature.ParseKind(kind)
	if err != nil {
		return nil, errors.Wrapf(err, "feature %s", name)
	}
	return feature.NewDiscreteFeature(name, k, nil), nil
}

func listFeature(name string, values []interface{}) feature.Feature {
	kind := feature.TextKind
	if len(values) > 0 {
		kind = listKind(values)
	}
	available := make([]feature.Value, 0, len(values))
	for _, v := range values {
		switch kind {
		case feature.BoolKind:
			available = append(available, feature.Bool(v.(bool)))
		case feature.IntKind:
			available = append(available, feature.Int(v.(int)))
		default:
			available = append(available, feature.Text(fmt.Sprintf("%v", v)))
		}
	}
	return feature.NewDiscreteFeature(name, kind, available)
}

func listKind(values []interface{}) feature.Kind {
	allBool, allInt := true, true
	for _, v := range values {
		switch v.(type) {
		case bool:
			allInt = false
		case int:
			allBool = false
		default:
			return feature.TextKind
		}
	}
	if allBool {
		return feature.BoolKind
	}
	if allInt {
		return feature.IntKind
	}
	return feature.TextKind
}
