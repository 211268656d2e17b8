package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/markbook/core/factory"
	metrics "github.com/kilianp07/markbook/core/metrics"
	_ "github.com/kilianp07/markbook/infra/metrics"
)

func TestMetricsConfigDecodeYAML(t *testing.T) {
	data := `sinks:
  - type: nop
  - type: nop
`
	path := filepath.Join(t.TempDir(), "metrics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	k := koanf.New(".")
	require.NoError(t, k.Load(file.Provider(path), yaml.Parser()))
	var cfg metrics.Config
	require.NoError(t, k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}))
	require.Len(t, cfg.Sinks, 2)

	s, err := metrics.NewMetricsSink(cfg.Sinks)
	require.NoError(t, err)
	assert.IsType(t, &metrics.MultiSink{}, s)
}

func TestMetricsFactory_Builtins(t *testing.T) {
	for _, name := range []string{"nop", "prometheus", "influx", "mqtt"} {
		assert.Contains(t, metrics.SinkTypes(), name)
	}
	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}})
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "missing"}})
	assert.Error(t, err)

	_, err = metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "mqtt", Conf: map[string]any{}}})
	assert.ErrorContains(t, err, "broker")
}
