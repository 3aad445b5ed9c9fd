package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/ganttkit/internal/config"
	"github.com/alexanderramin/ganttkit/internal/importer"
	"github.com/alexanderramin/ganttkit/internal/repository"
	"github.com/alexanderramin/ganttkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExportService_JSONRoundTripsImport(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	res, err := svc.imp.ImportFile(ctx, writeFile(t, "launch.json", sampleBars), ImportOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := svc.exp.Export(ctx, res.Chart.ID, config.FormatJSON, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.JSONEq(t, `[
		{"myStart": "2024-01-01", "ganttBarConfig": {"id": "plan", "label": {"name": "Plan"}, "bundle": "prep"}},
		{"ganttBarConfig": {"id": "build", "bundle": "prep", "dragLimitLeft": 10, "dragLimitRight": 2}},
		{"ganttBarConfig": {"id": "ship", "immobile": true}}
	]`, buf.String())

	// The export is itself importable.
	doc, err := importer.ParseDocument(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, importer.ValidateDocument(doc))
}

func TestExportService_YAML(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	res, err := svc.imp.ImportFile(ctx, writeFile(t, "launch.json", sampleBars), ImportOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = svc.exp.Export(ctx, res.Chart.ID, config.FormatYAML, &buf)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	cfg, ok := decoded[2]["ganttBarConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ship", cfg["id"])
	assert.Equal(t, true, cfg["immobile"])
}

func TestExportService_KeepsMarkupAndLargeIntegers(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	chart := createChart(t, svc, "Exact")

	bar := testutil.NewTestBar("a",
		testutil.WithLogo("<b>R&D</b>"),
		testutil.WithExtra("big", json.RawMessage("9007199254740993")),
		testutil.WithExtra("ratio", json.RawMessage("0.1")),
	)
	_, err := svc.bars.Put(ctx, chart.ID, bar)
	require.NoError(t, err)

	var jsonOut bytes.Buffer
	_, err = svc.exp.Export(ctx, chart.ID, config.FormatJSON, &jsonOut)
	require.NoError(t, err)
	assert.Contains(t, jsonOut.String(), `"logo": "<b>R&D</b>"`)
	assert.Contains(t, jsonOut.String(), `"big": 9007199254740993`)

	var yamlOut bytes.Buffer
	_, err = svc.exp.Export(ctx, chart.ID, config.FormatYAML, &yamlOut)
	require.NoError(t, err)
	assert.Contains(t, yamlOut.String(), "big: 9007199254740993")
	assert.Contains(t, yamlOut.String(), "ratio: 0.1")

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 9007199254740993, decoded[0]["big"])
	cfg := decoded[0]["ganttBarConfig"].(map[string]any)
	assert.Equal(t, map[string]any{"logo": "<b>R&D</b>"}, cfg["html"])
}

func TestExportService_EmptyChartAndErrors(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	chart := createChart(t, svc, "Empty")

	var buf bytes.Buffer
	n, err := svc.exp.Export(ctx, chart.ID, config.FormatJSON, &buf)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.JSONEq(t, `[]`, buf.String())

	_, err = svc.exp.Export(ctx, "missing", config.FormatJSON, &buf)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.exp.Export(ctx, chart.ID, config.ExportFormat("xml"), &buf)
	assert.Error(t, err)
}
