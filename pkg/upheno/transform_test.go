package upheno

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-graph-hub/kgphenio/pkg/kgx"
)

const sampleMapping = `p1,label_x,p2,label_y
http://purl.obolibrary.org/obo/HP_0000924,Abnormality of the skeletal system,http://purl.obolibrary.org/obo/MP_0005390,skeleton phenotype
http://purl.obolibrary.org/obo/ZP_0000001,zebrafish thing,http://purl.obolibrary.org/obo/MP_0005390,skeleton phenotype
http://purl.obolibrary.org/obo/HP_0000924,Abnormality of the skeletal system,http://purl.obolibrary.org/obo/MP_0005390,skeleton phenotype
`

func TestTransformRows(t *testing.T) {
	g, err := transformRows(context.Background(), strings.NewReader(sampleMapping))
	require.NoError(t, err)

	// ZP row filtered out; duplicate HP/MP pair deduplicated.
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())

	hp, ok := g.Node("HP:0000924")
	require.True(t, ok)
	assert.Equal(t, "Abnormality of the skeletal system", hp.Name)
	assert.Equal(t, "biolink:PhenotypicFeature", hp.Category)
	assert.Equal(t, "http://purl.obolibrary.org/obo/HP_0000924", hp.IRI)

	e := g.Edges()[0]
	assert.Equal(t, "HP:0000924", e.Subject)
	assert.Equal(t, "biolink:same_as", e.Predicate)
	assert.Equal(t, "MP:0005390", e.Object)
	assert.Equal(t, "skos:exactMatch", e.Relation)
	assert.True(t, strings.HasPrefix(e.ID, "uuid:"), e.ID)
}

func TestTransformRowsMissingColumn(t *testing.T) {
	_, err := transformRows(context.Background(), strings.NewReader("p1,p2\na,b\n"))
	assert.ErrorContains(t, err, "missing column")
}

func TestRun(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, MappingFile), []byte(sampleMapping), 0644))

	tr, err := New(&Config{InputDir: inDir, OutputDir: outDir})
	require.NoError(t, err)
	defer tr.Close()

	require.NoError(t, tr.Run(context.Background()))

	g, err := kgx.ReadGraph(filepath.Join(outDir, SourceName), SourceName)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
}

func TestRunMissingMapping(t *testing.T) {
	tr, err := New(&Config{InputDir: t.TempDir(), OutputDir: t.TempDir()})
	require.NoError(t, err)

	assert.Error(t, tr.Run(context.Background()))
}
