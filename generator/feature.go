package generator

// FeatureStage classifies how stable a generator feature is.
type FeatureStage int

const (
	Experimental FeatureStage = iota
	Alpha
	Beta
	Stable
)

// Feature is one optionally-enabled piece of generator behavior.
type Feature struct {
	Name        string
	Stage       FeatureStage
	Description string
}

var (
	// FeatureExcerpts names excerpt-copy struct variant emission. Generate
	// does not consult this flag and emits no excerpt-copy variants.
	FeatureExcerpts = Feature{Name: "excerpts", Stage: Beta, Description: "emit excerpt-copy struct variants"}
	// FeatureActionHelpers names bound-action helper method emission.
	// Generate does not consult this flag and emits no such helpers.
	FeatureActionHelpers = Feature{Name: "action_helpers", Stage: Alpha, Description: "emit typed bound-action helper methods"}
	// FeatureRootAliases emits a root-package alias file re-exporting every
	// generated namespace package's simple, complex and entity type names.
	FeatureRootAliases = Feature{Name: "root_aliases", Stage: Stable, Description: "emit root-package re-export aliases"}
)

// AllFeatures lists every generator feature in declaration order.
var AllFeatures = []Feature{FeatureExcerpts, FeatureActionHelpers, FeatureRootAliases}
