package webgraph

import (
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// FormatSuccessors renders nodeID's decoded successor list as a
// space-separated "node: s1 s2 s3" line, reusing a pooled scratch buffer
// to build the string instead of repeated string concatenation, matching
// package compactindexsized's use of bytebufferpool for scratch reads
// during lookup. Intended for the demonstration CLI's graph dump command,
// not for any hot query path.
func (g *Graph) FormatSuccessors(nodeID uint64) (string, error) {
	successors, err := g.Successors(nodeID)
	if err != nil {
		return "", err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.B = strconv.AppendUint(buf.B, nodeID, 10)
	buf.B = append(buf.B, ':')
	for _, s := range successors {
		buf.B = append(buf.B, ' ')
		buf.B = strconv.AppendUint(buf.B, s, 10)
	}
	return buf.String(), nil
}
