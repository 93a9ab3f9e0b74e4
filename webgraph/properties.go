package webgraph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Properties holds the subset of a BVGraph-style .properties file this
// reader needs to decode a graph: node/arc counts, the per-field code
// choices, and the structural parameters (window size, interval length,
// reference depth) that bound successor decoding.
//
// A real .properties file carries many more statistics keys
// (bitspernode, avgref, ...); those are accounting metadata produced by a
// compressor and are not read here, since nothing in this package writes
// graphs.
type Properties struct {
	Version           int
	GraphClass        string
	Nodes             uint64
	Arcs              uint64
	Codes             CodesSettings
	ZetaK             int
	WindowSize        int
	MinIntervalLength int
	MaxRefCount       int

	// BuildID, if present, is the "buildid" key this graph's builder
	// stamped into both the graph's and its offsets' properties files so
	// the two can be cross-checked as coming from the same build.
	BuildID string
}

// requiredKeys are the keys spec.md §6 requires a properties file to carry.
var requiredKeys = []string{
	"version", "graphclass", "nodes", "arcs", "compressionflags",
	"zetak", "windowsize", "minintervallength", "maxrefcount",
}

// ParseProperties reads a BVGraph-style key=value properties file, one
// assignment per line, blank lines and "#"-prefixed comments ignored.
func ParseProperties(r io.Reader) (*Properties, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: unparsable line %q", ErrInvalidProperty, line)
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("webgraph: reading properties: %w", err)
	}

	for _, key := range requiredKeys {
		if _, ok := values[key]; !ok {
			return nil, fmt.Errorf("%w: missing required key %q", ErrInvalidProperty, key)
		}
	}

	get := func(key string) string { return values[key] }
	getInt := func(key string) (int, error) {
		v, err := strconv.Atoi(get(key))
		if err != nil {
			return 0, fmt.Errorf("%w: key %q: %v", ErrInvalidProperty, key, err)
		}
		return v, nil
	}
	getUint64 := func(key string) (uint64, error) {
		v, err := strconv.ParseUint(get(key), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: key %q: %v", ErrInvalidProperty, key, err)
		}
		return v, nil
	}

	p := &Properties{GraphClass: get("graphclass"), BuildID: get("buildid")}

	var err error
	if p.Version, err = getInt("version"); err != nil {
		return nil, err
	}
	if p.Nodes, err = getUint64("nodes"); err != nil {
		return nil, err
	}
	if p.Arcs, err = getUint64("arcs"); err != nil {
		return nil, err
	}
	if p.ZetaK, err = getInt("zetak"); err != nil {
		return nil, err
	}
	if p.WindowSize, err = getInt("windowsize"); err != nil {
		return nil, err
	}
	if p.MinIntervalLength, err = getInt("minintervallength"); err != nil {
		return nil, err
	}
	if p.MaxRefCount, err = getInt("maxrefcount"); err != nil {
		return nil, err
	}

	flags, err := getUint64("compressionflags")
	if err != nil {
		return nil, err
	}
	if p.Codes, err = ParseCodesSettings(flags); err != nil {
		return nil, err
	}

	return p, nil
}

// ParsePropertiesFile opens and parses a properties file at path.
func ParsePropertiesFile(path string) (*Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("webgraph: cannot open properties file: %w", err)
	}
	defer f.Close()
	return ParseProperties(f)
}
