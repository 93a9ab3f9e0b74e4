package webgraph

import "errors"

// ErrInvalidProperty marks a properties file missing a required key or
// holding a value that doesn't parse as the type that key expects.
var ErrInvalidProperty = errors.New("webgraph: invalid or missing property")

// ErrReferenceDepthExceeded marks a node whose chain of back-references is
// longer than its graph's declared MaxRefCount, which can only
// happen if the graph file is corrupt or was built with a different
// window/maxrefcount than its properties file now claims.
var ErrReferenceDepthExceeded = errors.New("webgraph: reference chain exceeds max reference count")

// ErrNodeOutOfRange marks a node id at or beyond the graph's declared
// node count.
var ErrNodeOutOfRange = errors.New("webgraph: node id out of range")
