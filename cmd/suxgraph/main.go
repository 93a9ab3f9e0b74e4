// Command suxgraph opens a BVGraph-style compressed graph (a node data
// file, an Elias-Fano offsets file, and a properties file) and dumps the
// successor list of one or more nodes.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/rpcpool/sux-go/eliasfano"
	"github.com/rpcpool/sux-go/mmapbuf"
	"github.com/rpcpool/sux-go/webgraph"
)

var gitCommitSHA = ""

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-interrupt:
			klog.Info("received interrupt signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(interrupt)
	}()

	app := &cli.App{
		Name:        "suxgraph",
		Version:     gitCommitSHA,
		Description: "Dump successor lists from a BVGraph-style compressed graph.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "graph", Required: true, Usage: "path to the .graph node data file"},
			&cli.StringFlag{Name: "offsets", Required: true, Usage: "path to the .offsets Elias-Fano file"},
			&cli.StringFlag{Name: "properties", Required: true, Usage: "path to the .properties file"},
		},
		Action: func(c *cli.Context) error {
			return runDump(c.String("graph"), c.String("offsets"), c.String("properties"), c.Args().Slice())
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		klog.Fatal(err)
	}
}

func runDump(graphPath, offsetsPath, propertiesPath string, nodeArgs []string) error {
	properties, err := webgraph.ParsePropertiesFile(propertiesPath)
	if err != nil {
		return fmt.Errorf("suxgraph: %w", err)
	}

	graphBuf, err := mmapbuf.Open(graphPath)
	if err != nil {
		return fmt.Errorf("suxgraph: opening graph file: %w", err)
	}
	defer graphBuf.Close()
	graphWords, err := graphBuf.Words()
	if err != nil {
		return fmt.Errorf("suxgraph: reading graph file: %w", err)
	}

	offsetsBuf, err := mmapbuf.Open(offsetsPath)
	if err != nil {
		return fmt.Errorf("suxgraph: opening offsets file: %w", err)
	}
	defer offsetsBuf.Close()
	offsets, err := eliasfano.ReadFrom(io.NewSectionReader(offsetsBuf, 0, offsetsBuf.Len()))
	if err != nil {
		return fmt.Errorf("suxgraph: decoding offsets: %w", err)
	}

	g := webgraph.Open(graphWords, uint64(len(graphWords))*64, offsets, properties)
	klog.Infof("opened graph with %d nodes, %d arcs", properties.Nodes, properties.Arcs)

	if len(nodeArgs) == 0 {
		for node := uint64(0); node < g.NumNodes(); node++ {
			line, err := g.FormatSuccessors(node)
			if err != nil {
				return fmt.Errorf("suxgraph: node %d: %w", node, err)
			}
			fmt.Println(line)
		}
		return nil
	}

	for _, arg := range nodeArgs {
		node, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("suxgraph: parsing node id %q: %w", arg, err)
		}
		line, err := g.FormatSuccessors(node)
		if err != nil {
			return fmt.Errorf("suxgraph: node %d: %w", node, err)
		}
		fmt.Println(line)
	}
	return nil
}
