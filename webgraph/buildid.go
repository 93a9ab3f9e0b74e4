package webgraph

import "github.com/google/uuid"

// NewBuildID returns a fresh build identifier suitable for stamping into
// the "buildid" key of a graph's and its offsets' properties files, so
// SameBuild can cross-check that both came from the same build.
func NewBuildID() string {
	return uuid.New().String()
}

// SameBuild reports whether two properties files were stamped with the
// same build id. Properties files that omit the (optional) "buildid" key
// are treated as compatible with anything, since the key predates this
// check and older graphs won't carry it.
func SameBuild(graph, offsets *Properties) bool {
	if graph.BuildID == "" || offsets.BuildID == "" {
		return true
	}
	return graph.BuildID == offsets.BuildID
}
