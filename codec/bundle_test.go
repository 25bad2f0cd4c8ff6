package codec

import (
	"encoding/json"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/advcore/project"
)

func TestBundleRoundTrip(t *testing.T) {
	data, err := ExportBundle(fixtureProject())
	require.NoError(t, err)

	got, err := ImportBundle(data)
	require.NoError(t, err)
	assert.Len(t, got.Variables, 3)
	require.Len(t, got.Graphs, 1)
	assert.Len(t, got.Graphs[0].Nodes, 3)
	assert.Len(t, got.DialogueGraphs, 1)
	assert.Len(t, got.Rules, 2)
}

func TestBundleEmptyProject(t *testing.T) {
	data, err := ExportBundle(project.New())
	require.NoError(t, err)

	got, err := ImportBundle(data)
	require.NoError(t, err)
	assert.Empty(t, got.Variables)
	assert.Empty(t, got.Graphs)
	assert.Empty(t, got.Rules)
}

func TestBundleRejectsGarbage(t *testing.T) {
	_, err := ImportBundle([]byte("not snappy"))
	require.Error(t, err)
}

func TestBundleRejectsUnknownFormat(t *testing.T) {
	doc, err := json.Marshal(bundleWire{Format: 99})
	require.NoError(t, err)

	_, err = ImportBundle(snappy.Encode(nil, doc))
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Error(), "format 99")
}
