package phenio

const (
	// SourceName identifies this transform in output file names and
	// provided_by columns.
	SourceName = "phenio"

	// OntologyFile is the expected input file in the raw data directory.
	// A .tar.gz companion is decompressed when only that exists.
	OntologyFile = "phenio.owl"
)

// offendingLines are the empty annotation elements known to break the
// obograph conversion of large PHENIO releases. The repair pass drops them.
var offendingLines = []string{
	"<oboInOwl:hasNarrowSynonym></oboInOwl:hasNarrowSynonym>",
	"<oboInOwl:hasBroadSynonym></oboInOwl:hasBroadSynonym>",
	"<oboInOwl:hasExactSynonym></oboInOwl:hasExactSynonym>",
	"<oboInOwl:hasRelatedSynonym></oboInOwl:hasRelatedSynonym>",
	"<oboInOwl:hasDbXref></oboInOwl:hasDbXref>",
	"<rdfs:comment></rdfs:comment>",
}
