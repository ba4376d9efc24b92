package mlassistant

import (
	"testing"

	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/stretchr/testify/require"
)

// andFrame holds C = A AND B
func andFrame(t *testing.T) *dataset.Frame {
	f, err := dataset.NewFrame(
		dataset.NewBoolColumn("A", true, true, false, false),
		dataset.NewBoolColumn("B", true, false, true, false),
		dataset.NewBoolColumn("C", true, false, false, false),
	)
	require.NoError(t, err)
	return f
}

func weatherFrame(t *testing.T) *dataset.Frame {
	f, err := dataset.NewFrame(
		dataset.NewTextColumn("outlook", "sunny", "sunny", "overcast", "rain", "rain", "rain", "overcast", "sunny", "sunny", "rain", "sunny", "overcast", "overcast", "rain"),
		dataset.NewFloatColumn("temperature", 85, 80, 83, 70, 68, 65, 64, 72, 69, 75, 75, 72, 81, 71),
		dataset.NewIntColumn("humidity", false, 85, 90, 86, 96, 80, 70, 65, 95, 70, 80, 70, 90, 75, 91),
		dataset.NewBoolColumn("windy", false, true, false, false, false, true, true, false, false, false, true, true, false, true),
		dataset.NewTextColumn("play", "no", "no", "yes", "yes", "yes", "no", "yes", "no", "yes", "yes", "yes", "yes", "yes", "no"),
	)
	require.NoError(t, err)
	return f
}

// discreteWeatherFrame keeps the discrete attributes of weatherFrame
func discreteWeatherFrame(t *testing.T) *dataset.Frame {
	w := weatherFrame(t)
	f, err := dataset.NewFrame(w.Column(0), w.Column(3), w.Column(4))
	require.NoError(t, err)
	return f
}
