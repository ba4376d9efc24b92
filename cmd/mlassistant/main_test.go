package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ergocortex/MLAssistant/feature"
	"github.com/ergocortex/MLAssistant/tree"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const andMetadata = `
features:
  a: bool
  b: bool
  out: discrete
`

const andSamples = `a,b,out
true,true,yes
true,false,no
false,true,no
false,false,no
`

func writeFiles(t *testing.T) (string, string) {
	dir := t.TempDir()
	md := filepath.Join(dir, "metadata.yml")
	data := filepath.Join(dir, "samples.csv")
	require.NoError(t, os.WriteFile(md, []byte(andMetadata), 0600))
	require.NoError(t, os.WriteFile(data, []byte(andSamples), 0600))
	return md, data
}

func execute(t *testing.T, in string, args ...string) string {
	cmd := cliParser()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(in))
	cmd.SetArgs(args)
	osExit = func(code int) {
		t.Fatalf("exited with code %d: %s", code, out.String())
	}
	defer func() { osExit = os.Exit }()
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestGrowCmd(t *testing.T) {
	md, data := writeFiles(t)
	out := execute(t, "", "grow", "-m", md, "-i", data, "-c", "out")
	assert.True(t, strings.HasPrefix(out, "[0]\n"))
	assert.Contains(t, out, "{ a = false (0.50) }")
	assert.Contains(t, out, "{ yes }")
}

func TestGrowCmdProbability(t *testing.T) {
	md, data := writeFiles(t)
	out := execute(t, "", "grow", "--probability", "-m", md, "-i", data, "-c", "out")
	assert.Contains(t, out, "{ out = yes")
}

func TestValidateCmd(t *testing.T) {
	md, data := writeFiles(t)
	out := execute(t, "", "validate", "-k", "2", "-m", md, "-i", data, "-c", "out")
	assert.Contains(t, out, "accuracy: ")
	assert.Contains(t, out, "unclassified: ")
}

func TestClustersCmd(t *testing.T) {
	md, data := writeFiles(t)
	out := execute(t, "", "clusters", "-m", md, "-i", data, "-c", "out")
	assert.Contains(t, out, "0.2500")
	assert.Contains(t, out, "0.7500")
	assert.Contains(t, out, "1.0000")
}

func TestPredictCmdSamples(t *testing.T) {
	md, data := writeFiles(t)
	samples := filepath.Join(t.TempDir(), "predict.csv")
	require.NoError(t, os.WriteFile(samples, []byte("b,a\ntrue,true\ntrue,false\n?,true\n"), 0600))
	out := execute(t, "", "predict", "-m", md, "-i", data, "-c", "out", "-s", samples)
	assert.Equal(t, "1: yes\n2: no\n3: unknown attribute (at node 2: b)\n", out)
}

func TestPredictCmdInteractive(t *testing.T) {
	md, data := writeFiles(t)
	out := execute(t, "maybe\ntrue\nfalse\n", "predict", "-m", md, "-i", data, "-c", "out")
	assert.Contains(t, out, "Invalid value \"maybe\"")
	assert.True(t, strings.HasSuffix(out, "\nout: no\n"))
}

func TestPredictCmdEnvironment(t *testing.T) {
	md, data := writeFiles(t)
	t.Setenv("MLASSISTANT_CLASS_FEATURE", "out")
	t.Setenv("MLASSISTANT_UNDEFINED_VALUE", "-")
	out := execute(t, "true\n-\n", "predict", "-m", md, "-i", data)
	assert.True(t, strings.HasSuffix(out, "\nout: unknown attribute (at node 2: b)\n"))
}

func TestVersionCmd(t *testing.T) {
	assert.Equal(t, "mlassistant v0.1.0\n", execute(t, "", "version"))
}

func TestReadSample(t *testing.T) {
	features := []feature.Feature{
		feature.NewDiscreteFeature("outlook", feature.TextKind, []feature.Value{feature.Text("sunny"), feature.Text("rain")}),
		feature.NewContinuousFeature("temperature", feature.FloatKind),
	}
	out := &bytes.Buffer{}
	s := newReadSample(strings.NewReader("cloudy\nrain\n?\n"), out, features, "?")

	v, ok := s.ValueFor("outlook")
	require.True(t, ok)
	assert.Equal(t, feature.Text("rain"), v)
	v, ok = s.ValueFor("outlook")
	require.True(t, ok)
	assert.Equal(t, feature.Text("rain"), v)

	_, ok = s.ValueFor("temperature")
	assert.False(t, ok)
	_, ok = s.ValueFor("humidity")
	assert.False(t, ok)

	assert.Contains(t, out.String(), "Value for outlook (one of sunny, rain)?")
	assert.Contains(t, out.String(), "Invalid value \"cloudy\"")
	assert.Equal(t, 3, strings.Count(out.String(), "Value for "))
}

func TestClustersTable(t *testing.T) {
	table := clustersTable("play", []tree.ProbabilityCluster{
		{Value: feature.Text("yes"), Probability: 0.75, Nodes: []tree.NodeID{2, 5}},
		{Value: feature.Text("no"), Probability: 0.25, Nodes: []tree.NodeID{3}},
	})
	assert.Contains(t, strings.ToLower(table), "play")
	assert.Contains(t, table, "2,5")
	assert.Contains(t, table, "1.0000")
}

func TestLoggerIsBuiltOnce(t *testing.T) {
	rc := &rootCmdConfig{verbose: true}
	l := rc.Logger()
	assert.Same(t, l, rc.Logger())
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	assert.Equal(t, logrus.WarnLevel, (&rootCmdConfig{}).Logger().GetLevel())
}
