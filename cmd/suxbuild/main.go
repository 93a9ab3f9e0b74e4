// Command suxbuild reads a sorted list of non-negative integers, one per
// line, and writes the Elias-Fano encoding of that set to an output file.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/rpcpool/sux-go/eliasfano"
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
		Name:        "suxbuild",
		Version:     gitCommitSHA,
		Description: "Build an Elias-Fano encoded integer set from a sorted newline-delimited input.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "path to a file of sorted non-negative integers, one per line"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "path to write the Elias-Fano encoded set to"},
		},
		Action: func(c *cli.Context) error {
			return runBuild(c.String("input"), c.String("output"))
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		klog.Fatal(err)
	}
}

func runBuild(inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("suxbuild: opening input: %w", err)
	}
	defer in.Close()

	var values []uint64
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	bar := progressbar.Default(-1, "reading integers")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return fmt.Errorf("suxbuild: parsing %q: %w", line, err)
		}
		values = append(values, v)
		_ = bar.Add(1)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("suxbuild: reading input: %w", err)
	}

	klog.Infof("read %s values, building Elias-Fano set", humanize.Comma(int64(len(values))))

	ef, err := eliasfano.FromSorted(values)
	if err != nil {
		return fmt.Errorf("suxbuild: building set: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("suxbuild: creating output: %w", err)
	}
	defer out.Close()

	written, err := ef.WriteTo(out)
	if err != nil {
		return fmt.Errorf("suxbuild: writing output: %w", err)
	}
	klog.Infof("wrote %s bytes to %s", humanize.Bytes(uint64(written)), outputPath)
	return nil
}
