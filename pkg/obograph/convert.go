package obograph

import (
	"strings"

	"github.com/knowledge-graph-hub/kgphenio/pkg/kgx"
)

const oboIRIPrefix = "http://purl.obolibrary.org/obo/"

// Predicate IRIs and shorthands that carry a specific biolink meaning.
// Everything else maps to biolink:related_to.
var predicateMap = map[string]string{
	"is_a":                       "biolink:subclass_of",
	oboIRIPrefix + "BFO_0000050": "biolink:part_of",
	oboIRIPrefix + "BFO_0000051": "biolink:has_part",
	oboIRIPrefix + "RO_0002200":  "biolink:has_phenotype",
	oboIRIPrefix + "RO_0002202":  "biolink:develops_from",
}

// Category by curie prefix. Unlisted prefixes fall back to
// biolink:OntologyClass.
var categoryMap = map[string]string{
	"HP":     "biolink:PhenotypicFeature",
	"MP":     "biolink:PhenotypicFeature",
	"ZP":     "biolink:PhenotypicFeature",
	"XPO":    "biolink:PhenotypicFeature",
	"UPHENO": "biolink:PhenotypicFeature",
	"MONDO":  "biolink:Disease",
	"GO":     "biolink:BiologicalProcessOrActivity",
	"CHEBI":  "biolink:ChemicalEntity",
	"UBERON": "biolink:AnatomicalEntity",
}

// DefaultCategory is assigned when no prefix-specific category applies.
const DefaultCategory = "biolink:OntologyClass"

// ToKGX converts the document into a KGX graph. Deprecated classes and
// their edges are dropped, matching the obsolete-class cleanup the merge
// expects. providedBy stamps every emitted node and edge. All nodes are
// collected before any edge so the endpoint check does not depend on the
// order of graphs within the document.
func (d *Document) ToKGX(providedBy string) *kgx.Graph {
	g := kgx.NewGraph()
	dropped := make(map[string]struct{})

	for _, og := range d.Graphs {
		for _, n := range og.Nodes {
			if n.Type != "" && n.Type != "CLASS" {
				continue
			}
			if n.Meta != nil && n.Meta.Deprecated {
				dropped[n.ID] = struct{}{}
				continue
			}

			id := CurieFromIRI(n.ID)
			node := &kgx.Node{
				ID:         id,
				Category:   CategoryForCurie(id),
				Name:       n.Lbl,
				IRI:        n.ID,
				ProvidedBy: providedBy,
			}
			if n.Meta != nil {
				if n.Meta.Definition != nil {
					node.Description = n.Meta.Definition.Val
				}
				for _, syn := range n.Meta.Synonyms {
					node.Synonyms = append(node.Synonyms, syn.Val)
				}
				for _, xref := range n.Meta.Xrefs {
					node.Xrefs = append(node.Xrefs, xref.Val)
				}
			}
			g.AddNode(node)
		}
	}

	for _, og := range d.Graphs {
		for _, e := range og.Edges {
			if _, ok := dropped[e.Sub]; ok {
				continue
			}
			if _, ok := dropped[e.Obj]; ok {
				continue
			}

			subject := CurieFromIRI(e.Sub)
			object := CurieFromIRI(e.Obj)
			if _, ok := g.Node(subject); !ok {
				continue
			}
			if _, ok := g.Node(object); !ok {
				continue
			}

			relation := CurieFromIRI(e.Pred)
			if e.Pred == "is_a" {
				relation = "rdfs:subClassOf"
			}

			g.AddEdge(&kgx.Edge{
				Subject:    subject,
				Predicate:  PredicateForIRI(e.Pred),
				Object:     object,
				Relation:   relation,
				ProvidedBy: providedBy,
			})
		}
	}

	return g
}

// CurieFromIRI compacts an OBO PURL into a curie: the final path segment
// with its first underscore turned into a colon. Non-OBO IRIs pass through
// unchanged unless their last segment looks curie-shaped.
func CurieFromIRI(iri string) string {
	segment := iri
	if i := strings.LastIndexAny(segment, "/#"); i >= 0 {
		segment = segment[i+1:]
	}
	if i := strings.Index(segment, "_"); i > 0 {
		return segment[:i] + ":" + segment[i+1:]
	}
	if strings.HasPrefix(iri, oboIRIPrefix) || !strings.Contains(iri, "://") {
		return segment
	}
	return iri
}

// CategoryForCurie assigns a biolink category from the curie prefix.
func CategoryForCurie(curie string) string {
	prefix, _, found := strings.Cut(curie, ":")
	if !found {
		return DefaultCategory
	}
	if cat, ok := categoryMap[prefix]; ok {
		return cat
	}
	return DefaultCategory
}

// PredicateForIRI maps an edge predicate to its biolink predicate.
func PredicateForIRI(pred string) string {
	if p, ok := predicateMap[pred]; ok {
		return p
	}
	return "biolink:related_to"
}
