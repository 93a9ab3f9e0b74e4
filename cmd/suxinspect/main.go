// Command suxinspect opens a serialized Elias-Fano set and answers rank,
// select, and membership queries against it from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/rpcpool/sux-go/eliasfano"
	"github.com/rpcpool/sux-go/mmapbuf"
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
		Name:        "suxinspect",
		Version:     gitCommitSHA,
		Description: "Inspect a serialized Elias-Fano set: stats, rank, select, and membership queries.",
		Commands: []*cli.Command{
			newStatsCmd(),
			newSelectCmd(),
			newRankCmd(),
			newContainsCmd(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		klog.Fatal(err)
	}
}

func openSet(path string) (*eliasfano.EliasFano, error) {
	buf, err := mmapbuf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("suxinspect: opening %s: %w", path, err)
	}
	defer buf.Close()

	r := io.NewSectionReader(buf, 0, buf.Len())
	ef, err := eliasfano.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("suxinspect: decoding %s: %w", path, err)
	}
	return ef, nil
}

func newStatsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Print cardinality and universe of a set.",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			ef, err := openSet(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Printf("elements: %s\n", humanize.Comma(int64(ef.Len())))
			fmt.Printf("universe: %s\n", humanize.Comma(int64(ef.Universe())))
			fmt.Printf("low bits per element: %d\n", ef.LowBitCount())
			return nil
		},
	}
}

func newSelectCmd() *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Print the value at the given index.",
		ArgsUsage: "<path> <index>",
		Action: func(c *cli.Context) error {
			ef, err := openSet(c.Args().Get(0))
			if err != nil {
				return err
			}
			index, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
			if err != nil {
				return fmt.Errorf("suxinspect: parsing index: %w", err)
			}
			v, err := ef.Select(index)
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}
}

func newRankCmd() *cli.Command {
	return &cli.Command{
		Name:      "rank",
		Usage:     "Print the rank of the given value, if present.",
		ArgsUsage: "<path> <value>",
		Action: func(c *cli.Context) error {
			ef, err := openSet(c.Args().Get(0))
			if err != nil {
				return err
			}
			value, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
			if err != nil {
				return fmt.Errorf("suxinspect: parsing value: %w", err)
			}
			rank, ok := ef.Rank(value)
			if !ok {
				fmt.Println("not present")
				return nil
			}
			fmt.Println(rank)
			return nil
		},
	}
}

func newContainsCmd() *cli.Command {
	return &cli.Command{
		Name:      "contains",
		Usage:     "Report whether a value is a member of the set.",
		ArgsUsage: "<path> <value>",
		Action: func(c *cli.Context) error {
			ef, err := openSet(c.Args().Get(0))
			if err != nil {
				return err
			}
			value, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
			if err != nil {
				return fmt.Errorf("suxinspect: parsing value: %w", err)
			}
			fmt.Println(ef.Contains(value))
			return nil
		},
	}
}
