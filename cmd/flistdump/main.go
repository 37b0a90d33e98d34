// Command flistdump decodes a file list stream or snapshot and prints its
// entries, one per line.
//
// Usage:
//
//	flistdump [flags] [file]
//
// The stream is read from file, or standard input if file is absent or
// "-". List options come from FLIST_* environment variables or the YAML
// file given by -config.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kezhuw/flist"
)

var (
	dirColor       = color.New(color.FgBlue, color.Bold).SprintFunc()
	linkColor      = color.New(color.FgCyan).SprintFunc()
	deviceColor    = color.New(color.FgYellow).SprintFunc()
	tombstoneColor = color.New(color.FgRed, color.Faint).SprintFunc()
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("flistdump: %s", err))
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("flistdump", flag.ContinueOnError)
	flags.SetOutput(stderr)
	snapshot := flags.Bool("snapshot", false, "input is a snapshot file")
	curate := flags.Bool("curate", false, "sort and deduplicate before printing")
	stripRoot := flags.Bool("strip-root", false, "curate and strip leading / from directories")
	save := flags.String("save", "", "write the list to a snapshot `file`")
	configPath := flags.String("config", "", "read options from YAML `file`")
	showMetrics := flags.Bool("metrics", false, "print counters to stderr")
	if err := flags.Parse(args); err != nil {
		return err
	}
	path := flags.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry := prometheus.NewRegistry()
	opts := cfg.options(logger, flist.NewMetrics(registry))

	var l *flist.List
	if *snapshot {
		if path == "" || path == "-" {
			return fmt.Errorf("-snapshot needs a file name")
		}
		l, err = flist.LoadSnapshot(nil, path, opts)
	} else {
		l, err = decode(path, stdin, cfg, opts, logger)
	}
	if err != nil {
		return err
	}

	if *curate || *stripRoot {
		n := l.Curate(*stripRoot)
		logger.Debug("curated", zap.Int("entries", l.Len()), zap.Int("tombstones", n))
	}
	if err := list(stdout, l); err != nil {
		return err
	}
	if *save != "" {
		if err := flist.SaveSnapshot(nil, *save, l); err != nil {
			return err
		}
	}
	if *showMetrics {
		return dumpMetrics(stderr, registry)
	}
	return nil
}

func decode(path string, stdin io.Reader, cfg *Config, opts *flist.Options, logger *zap.Logger) (*flist.List, error) {
	l, err := flist.New(opts)
	if err != nil {
		return nil, err
	}
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	d := flist.NewDecoderSize(l, cfg.ChunkSize)
	if _, err := d.ReadFrom(r); err != nil {
		return nil, err
	}
	if err := d.Close(); err != nil {
		return nil, err
	}
	if n := len(d.Remaining()); n != 0 {
		logger.Warn("ignoring bytes after list", zap.Int("bytes", n))
	}
	return l, nil
}

func list(w io.Writer, l *flist.List) error {
	for _, e := range l.Entries() {
		if _, err := fmt.Fprintln(w, formatEntry(e)); err != nil {
			return err
		}
	}
	return nil
}

func formatEntry(e flist.Entry) string {
	if !e.Live() {
		return tombstoneColor("<deleted>")
	}
	f := e.File
	path := f.FullPath()
	switch {
	case f.IsDir():
		path = dirColor(path)
	case f.IsSymlink():
		path = linkColor(path)
		if f.Link != "" {
			path += " -> " + f.Link
		}
	case f.IsDevice():
		path = deviceColor(path)
	}
	mtime := time.Unix(f.ModTime, 0).UTC().Format("2006-01-02 15:04:05")
	return fmt.Sprintf("%s %12d %s %s", f.Mode, f.Length, mtime, path)
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, family := range families {
		for _, m := range family.GetMetric() {
			fmt.Fprintf(w, "%s %g\n", family.GetName(), m.GetCounter().GetValue())
		}
	}
	return nil
}
