// Package webgraph decodes a BVGraph-style compressed graph: a sequence of
// per-node successor lists bit-packed with universal codes chosen per
// field by a properties file, offsets into that sequence recovered by an
// Elias-Fano set over gamma-coded gaps, and successor lists copied from
// earlier nodes (run-length blocks), grouped into contiguous intervals, or
// spelled out as residual gaps — exactly the encoding described in
// spec.md §4.6. This package only reads; the compression side that
// produces these files is out of scope.
package webgraph

import (
	"fmt"

	"github.com/rpcpool/sux-go/bitio"
	"github.com/rpcpool/sux-go/codes"
	"github.com/rpcpool/sux-go/eliasfano"
	"github.com/rpcpool/sux-go/metrics"
)

// Graph is a read-only view over a decoded BVGraph-style node sequence.
// Nothing in Graph mutates buf; successive calls to Successors may be made
// from multiple goroutines, each with its own bitio.Reader clone.
type Graph struct {
	buf        []uint64
	nBits      uint64
	offsets    *eliasfano.EliasFano
	properties *Properties
}

// Open builds a Graph from already-decoded node words, an Elias-Fano
// offsets index (one gamma-coded gap per node, as produced from the
// "offsets file" described in spec.md §6), and the graph's properties.
func Open(buf []uint64, nBits uint64, offsets *eliasfano.EliasFano, properties *Properties) *Graph {
	return &Graph{buf: buf, nBits: nBits, offsets: offsets, properties: properties}
}

// NumNodes returns the number of nodes the graph's properties declare.
func (g *Graph) NumNodes() uint64 { return g.properties.Nodes }

// offsetOf returns the bit offset of a node's encoding by selecting into
// the Elias-Fano offsets index; this is the "offset(node_id) is an EF
// select" relationship described in spec.md §4.6.
func (g *Graph) offsetOf(nodeID uint64) (uint64, error) {
	off, err := g.offsets.Select(nodeID)
	if err != nil {
		return 0, fmt.Errorf("%w: node %d: %v", ErrNodeOutOfRange, nodeID, err)
	}
	return off, nil
}

// Successors decodes and returns the full successor list of nodeID, in
// ascending order, resolving any chain of back-references up to the
// graph's declared MaxRefCount.
func (g *Graph) Successors(nodeID uint64) ([]uint64, error) {
	if nodeID >= g.properties.Nodes {
		return nil, fmt.Errorf("%w: %d", ErrNodeOutOfRange, nodeID)
	}
	var maxDepth int
	result, err := g.resolve(nodeID, 0, &maxDepth)
	if err != nil {
		return nil, err
	}
	metrics.ObserveGraphDecode(maxDepth)
	return result, nil
}

// resolve decodes nodeID's successor list, following its reference chain
// (if any) by recursing through decodeFrom once per hop; depth is compared
// against MaxRefCount at each hop, so the recursion is at most
// MaxRefCount+1 levels deep.
func (g *Graph) resolve(nodeID uint64, depth int, maxDepth *int) ([]uint64, error) {
	if depth > *maxDepth {
		*maxDepth = depth
	}
	if depth > g.properties.MaxRefCount {
		return nil, fmt.Errorf("%w: node %d at depth %d", ErrReferenceDepthExceeded, nodeID, depth)
	}

	off, err := g.offsetOf(nodeID)
	if err != nil {
		return nil, err
	}
	r := bitio.NewReader(g.buf, g.nBits)
	r.Seek(off)

	return g.decodeFrom(r, nodeID, depth, maxDepth)
}

// decodeFrom decodes the node encoding starting at r's current position,
// assembling the copy-block list, the intervals, and the residuals into
// one ascending successor slice.
func (g *Graph) decodeFrom(r *bitio.Reader, nodeID uint64, depth int, maxDepth *int) ([]uint64, error) {
	c := g.properties.Codes

	outdegree, err := readCode(r, c.Outdegree, 0)
	if err != nil {
		return nil, fmt.Errorf("webgraph: node %d: outdegree: %w", nodeID, err)
	}
	if outdegree == 0 {
		return nil, nil
	}

	result := make([]uint64, 0, outdegree)

	remaining := outdegree
	if g.properties.WindowSize > 0 {
		refOffset, err := readCode(r, c.ReferenceOffset, outdegree)
		if err != nil {
			return nil, fmt.Errorf("webgraph: node %d: reference offset: %w", nodeID, err)
		}
		if refOffset > 0 {
			if refOffset > nodeID {
				return nil, fmt.Errorf("webgraph: node %d: reference offset %d predates node 0", nodeID, refOffset)
			}
			refNode := nodeID - refOffset
			refList, err := g.resolve(refNode, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}

			blockCount, err := readCode(r, c.BlockCount, outdegree)
			if err != nil {
				return nil, fmt.Errorf("webgraph: node %d: block count: %w", nodeID, err)
			}
			copied, err := decodeBlocks(r, c.Blocks, refList, blockCount)
			if err != nil {
				return nil, fmt.Errorf("webgraph: node %d: blocks: %w", nodeID, err)
			}
			result = append(result, copied...)
			if uint64(len(copied)) > remaining {
				return nil, fmt.Errorf("%w: node %d copied more than its outdegree", codes.ErrMalformedCode, nodeID)
			}
			remaining -= uint64(len(copied))
		}
	}

	if remaining > 0 && g.properties.MinIntervalLength > 0 {
		intervalCount, err := codes.ReadGamma(r)
		if err != nil {
			return nil, fmt.Errorf("webgraph: node %d: interval count: %w", nodeID, err)
		}
		if intervalCount > 0 {
			intervals, n, err := decodeIntervals(r, nodeID, intervalCount, g.properties.MinIntervalLength)
			if err != nil {
				return nil, fmt.Errorf("webgraph: node %d: intervals: %w", nodeID, err)
			}
			result = append(result, intervals...)
			if n > remaining {
				return nil, fmt.Errorf("%w: node %d interval decode exceeded outdegree", codes.ErrMalformedCode, nodeID)
			}
			remaining -= n
		}
	}

	if remaining > 0 {
		residuals, err := decodeResiduals(r, nodeID, c, remaining)
		if err != nil {
			return nil, err
		}
		result = append(result, residuals...)
	}

	return mergeAscending(result), nil
}

// decodeBlocks reads a run-length block list and returns the subsequence
// of refList it selects for copying. blockCount (already read by the
// caller) is the number of blocks *after* the first; the stream holds
// blockCount+1 block lengths in total. The first block is always a "copy"
// run; each subsequent block toggles between "skip" and "copy". Once the
// block list is exhausted, the remaining polarity is assumed to continue
// for the rest of refList — so a trailing "copy" state with no more
// blocks copies every remaining element, matching the copy-list
// compaction the block scheme exists to avoid spelling out bit by bit.
func decodeBlocks(r *bitio.Reader, c Code, refList []uint64, blockCount uint64) ([]uint64, error) {
	blocks := make([]uint64, 0, blockCount+1)
	first, err := readCode(r, c, uint64(len(refList)))
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, first)
	for i := uint64(0); i < blockCount; i++ {
		v, err := readCode(r, c, uint64(len(refList)))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, v+1)
	}

	var out []uint64
	copying := true
	bi := 0
	counter := blocks[0]
	unbounded := false
	for _, node := range refList {
		for counter == 0 && !unbounded {
			copying = !copying
			bi++
			if bi < len(blocks) {
				counter = blocks[bi]
			} else {
				unbounded = true
			}
		}
		if copying {
			out = append(out, node)
		}
		if !unbounded {
			counter--
		}
	}
	return out, nil
}

// decodeIntervals reads intervalCount (start, length) pairs and expands
// them into their member node ids. The first interval's start is
// zig-zag-mapped relative to nodeID (it may be less than nodeID); every
// subsequent interval's start is a gamma-coded gap from the end of the
// previous interval, and every length is stored minus minIntervalLength
// (the minimum interval length the encoder was configured with).
func decodeIntervals(r *bitio.Reader, nodeID, intervalCount uint64, minIntervalLength int) ([]uint64, uint64, error) {
	var out []uint64
	var total uint64
	prevEnd := int64(nodeID)
	for i := uint64(0); i < intervalCount; i++ {
		var start int64
		if i == 0 {
			gap, err := codes.ReadGamma(r)
			if err != nil {
				return nil, 0, err
			}
			start = prevEnd + zigzagDecode(gap)
		} else {
			gap, err := codes.ReadGamma(r)
			if err != nil {
				return nil, 0, err
			}
			start = prevEnd + int64(gap)
		}
		lengthField, err := codes.ReadGamma(r)
		if err != nil {
			return nil, 0, err
		}
		length := lengthField + uint64(minIntervalLength)
		for j := uint64(0); j < length; j++ {
			out = append(out, uint64(start)+j)
		}
		total += length
		prevEnd = start + int64(length)
	}
	return out, total, nil
}

// decodeResiduals reads the residual gap-coded successors not covered by
// copy blocks or intervals: the first residual is zig-zag-mapped relative
// to nodeID (so it may fall before or after it), and each subsequent
// residual adds a non-negative gap to the previous one (ties are legal,
// matching the original's multigraph-safe gap encoding).
func decodeResiduals(r *bitio.Reader, nodeID uint64, c CodesSettings, count uint64) ([]uint64, error) {
	out := make([]uint64, 0, count)
	var prev int64
	for i := uint64(0); i < count; i++ {
		if i == 0 {
			v, err := readCode(r, c.FirstResidual, count)
			if err != nil {
				return nil, fmt.Errorf("webgraph: node %d: first residual: %w", nodeID, err)
			}
			prev = int64(nodeID) + zigzagDecode(v)
		} else {
			gap, err := readCode(r, c.Residual, count)
			if err != nil {
				return nil, fmt.Errorf("webgraph: node %d: residual gap: %w", nodeID, err)
			}
			prev += int64(gap)
		}
		out = append(out, uint64(prev))
	}
	return out, nil
}

// zigzagDecode inverts the bijective zig-zag mapping spec.md's Non-goals
// carve out as the only signed-integer support in the core: even codes
// map to non-negative deltas, odd codes map to negative deltas.
func zigzagDecode(v uint64) int64 {
	if v&1 == 0 {
		return int64(v >> 1)
	}
	return -int64((v + 1) / 2)
}

// mergeAscending merges block-copied, interval, and residual successors
// (each already individually ascending) into one ascending slice; equal
// values are kept, not removed. BVGraph's own encoder guarantees the three groups are disjoint
// and the residuals are emitted in increasing order already; this still
// sorts defensively since the copy-block and interval groups are not
// necessarily interleaved with the residual group by construction.
func mergeAscending(xs []uint64) []uint64 {
	if len(xs) < 2 {
		return xs
	}
	sorted := true
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			sorted = false
			break
		}
	}
	if sorted {
		return xs
	}
	out := append([]uint64(nil), xs...)
	insertionSort(out)
	return out
}

func insertionSort(xs []uint64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
