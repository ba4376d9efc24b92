package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mlassistant "github.com/ergocortex/MLAssistant"
	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/ergocortex/MLAssistant/dataset/csvdataset"
	"github.com/ergocortex/MLAssistant/dataset/mongodataset"
	"github.com/ergocortex/MLAssistant/dataset/sqldataset"
	"github.com/ergocortex/MLAssistant/feature"
	"github.com/ergocortex/MLAssistant/feature/yaml"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const defaultQuery = "SELECT * FROM samples"

/*
inputCmdConfig holds the flags shared by commands that read a frame: where to
read samples from, the YAML metadata describing their features and the name
of the class feature.
*/
type inputCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	classFeature  string
	query         string
	collection    string
	filter        string
}

func (ic *inputCmdConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL (postgresql://) or MongoDB (mongodb://) connection URL with the samples (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringP("metadata", "m", "", "path to a YAML file describing the features of the samples (required)")
	cmd.Flags().StringP("class-feature", "c", "", "name of the feature to predict (required)")
	cmd.Flags().String("query", defaultQuery, "SQL query returning the samples from SQLite3 and PostgreSQL inputs")
	cmd.Flags().String("collection", mongodataset.DefaultCollection, "collection holding the samples in MongoDB inputs")
	cmd.Flags().String("filter", "", "JSON document filtering the samples in MongoDB inputs")
}

func (ic *inputCmdConfig) load(v *viper.Viper) {
	ic.dataInput = v.GetString("input")
	ic.metadataInput = v.GetString("metadata")
	ic.classFeature = v.GetString("class-feature")
	ic.query = v.GetString("query")
	ic.collection = v.GetString("collection")
	ic.filter = v.GetString("filter")
}

func (ic *inputCmdConfig) Validate() error {
	if ic.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if ic.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return nil
}

func (ic *inputCmdConfig) features() ([]feature.Feature, error) {
	features, err := yaml.ReadFeaturesFromFile(ic.metadataInput)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %v", err)
	}
	return features, nil
}

/*
frame reads the samples from the configured input. The kind of input is
guessed from its prefix or extension.
*/
func (ic *inputCmdConfig) frame(ctx context.Context, features []feature.Feature) (*dataset.Frame, error) {
	switch {
	case strings.HasPrefix(ic.dataInput, "postgresql://"), strings.HasPrefix(ic.dataInput, "postgres://"):
		return ic.sqlFrame(ctx, "postgres", features)
	case strings.HasSuffix(ic.dataInput, ".db"):
		return ic.sqlFrame(ctx, "sqlite3", features)
	case strings.HasPrefix(ic.dataInput, "mongodb://"):
		return ic.mongoFrame(ctx, features)
	}
	if ic.dataInput == "" {
		ic.Logf("Reading samples from STDIN...")
	} else {
		ic.Logf("Reading samples from %s...", ic.dataInput)
	}
	f, err := csvdataset.ReadFile(ic.dataInput, features, ic.classFeature)
	if err != nil {
		return nil, fmt.Errorf("reading samples: %v", err)
	}
	return f, nil
}

func (ic *inputCmdConfig) sqlFrame(ctx context.Context, driver string, features []feature.Feature) (*dataset.Frame, error) {
	ic.Logf("Opening %s database %s to read samples...", driver, ic.dataInput)
	db, err := sqlx.Open(driver, ic.dataInput)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v", ic.dataInput, err)
	}
	defer db.Close()
	f, err := sqldataset.Load(ctx, db, ic.query, features, ic.classFeature)
	if err != nil {
		return nil, fmt.Errorf("reading samples: %v", err)
	}
	return f, nil
}

func (ic *inputCmdConfig) mongoFrame(ctx context.Context, features []feature.Feature) (*dataset.Frame, error) {
	var query bson.M
	if ic.filter != "" {
		if err := json.Unmarshal([]byte(ic.filter), &query); err != nil {
			return nil, fmt.Errorf("parsing filter: %v", err)
		}
	}
	ic.Logf("Dialing %s to read samples...", ic.dataInput)
	session, err := mgo.Dial(ic.dataInput)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %v", ic.dataInput, err)
	}
	defer session.Close()
	f, err := mongodataset.Load(ctx, session, ic.collection, query, features, ic.classFeature)
	if err != nil {
		return nil, fmt.Errorf("reading samples: %v", err)
	}
	return f, nil
}

/*
trainCmdConfig holds the flags of commands that grow trees on top of the
input ones.
*/
type trainCmdConfig struct {
	inputCmdConfig
	criterion string
	maxDepth  int
	maxNodes  int
	prune     bool
}

func (tc *trainCmdConfig) addFlags(cmd *cobra.Command) {
	tc.inputCmdConfig.addFlags(cmd)
	cmd.Flags().String("criterion", mlassistant.InformationGain.String(), "criterion to select attributes with, one of information-gain, gini-impurity or gain-ratio")
	cmd.Flags().Int("max-depth", 0, "depth at which nodes stop being expanded (defaults to 0: no limit)")
	cmd.Flags().Int("max-nodes", 0, "maximum number of nodes of the tree (defaults to 0: no limit)")
	cmd.Flags().Bool("prune", false, "remove nodes with a single child from the grown tree")
}

func (tc *trainCmdConfig) load(v *viper.Viper) {
	tc.inputCmdConfig.load(v)
	tc.criterion = v.GetString("criterion")
	tc.maxDepth = v.GetInt("max-depth")
	tc.maxNodes = v.GetInt("max-nodes")
	tc.prune = v.GetBool("prune")
}

func (tc *trainCmdConfig) Validate() error {
	if err := tc.inputCmdConfig.Validate(); err != nil {
		return err
	}
	if _, err := mlassistant.ParseCriterion(tc.criterion); err != nil {
		return err
	}
	if tc.maxDepth < 0 {
		return fmt.Errorf("max-depth cannot be negative")
	}
	if tc.maxNodes < 0 {
		return fmt.Errorf("max-nodes cannot be negative")
	}
	return nil
}

func (tc *trainCmdConfig) options() (mlassistant.Criterion, []mlassistant.Option, error) {
	c, err := mlassistant.ParseCriterion(tc.criterion)
	if err != nil {
		return 0, nil, err
	}
	opts := []mlassistant.Option{
		mlassistant.MaxDepth(tc.maxDepth),
		mlassistant.MaxNodes(tc.maxNodes),
		mlassistant.WithLogger(tc.Logger()),
	}
	if tc.prune {
		opts = append(opts, mlassistant.Pruned())
	}
	return c, opts, nil
}

/*
prepare loads the settings of a command into the given loader, validates them
and reads the frame to work on, exiting with the conventional codes on
failure: 1 for invalid settings, 2 for metadata errors and 4 for input errors.
*/
func prepare(cmd *cobra.Command, rc *rootCmdConfig, cfg interface {
	load(*viper.Viper)
	Validate() error
}, ic *inputCmdConfig) *dataset.Frame {
	v, err := rc.settings(cmd)
	if err != nil {
		exit(cmd, err, 1)
	}
	cfg.load(v)
	if err = cfg.Validate(); err != nil {
		exit(cmd, err, 1)
	}
	features, err := ic.features()
	if err != nil {
		exit(cmd, err, 2)
	}
	f, err := ic.frame(cmd.Context(), features)
	if err != nil {
		exit(cmd, err, 4)
	}
	return f
}
