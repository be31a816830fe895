package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/sink"
	"github.com/kbukum/pipekit/source"
	"github.com/kbukum/pipekit/transform"
)

// scanOptions mirror the scan command's flags.
type scanOptions struct {
	keep       []string
	skip       []string
	skipDirs   []string
	recursive  bool
	match      string
	exclude    string
	ignoreCase bool
	meta       bool
	out        string
	jsonOut    string
	appendOut  bool
}

// newScanCmd creates the scan command, which composes a directory scan
// pipeline from flags instead of a definition file.
func newScanCmd() *cobra.Command {
	var o scanOptions

	cmd := &cobra.Command{
		Use:   "scan DIR",
		Short: "Stream lines from files under a directory, filtered by pattern",
		Long: `Scan streams every line of every readable file under DIR and writes the
surviving lines to stdout or to files. Line patterns are regular
expressions matched from the start of each line; file patterns are shell
globs matched against base names.`,
		Example: `  pipekit scan ./logs --keep '*.log' --match '.*ERROR'
  pipekit scan ./logs -r --skip-dirs .git --match '.*(ERROR|WARN)' --out report.txt
  pipekit scan ./notes --exclude '#' --meta --json report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], o)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&o.keep, "keep", nil, "Globs of file names to include (default: all files)")
	flags.StringSliceVar(&o.skip, "skip", nil, "Globs of file names to exclude")
	flags.BoolVarP(&o.recursive, "recursive", "r", false, "Walk subdirectories")
	flags.StringSliceVar(&o.skipDirs, "skip-dirs", nil, "Directory names to prune from a recursive walk")
	flags.StringVar(&o.match, "match", "", "Keep only lines matching this pattern (from line start)")
	flags.StringVar(&o.exclude, "exclude", "", "Drop lines matching this pattern (from line start)")
	flags.BoolVarP(&o.ignoreCase, "ignore-case", "i", false, "Case-insensitive line matching")
	flags.BoolVar(&o.meta, "meta", false, "Prefix each line with its resource and sequence number")
	flags.StringVarP(&o.out, "out", "o", "", "Write lines to this file instead of stdout")
	flags.BoolVar(&o.appendOut, "append", false, "Append to the output file instead of truncating")
	flags.StringVar(&o.jsonOut, "json", "", "Also write a JSON report to this file")

	return cmd
}

func runScan(cmd *cobra.Command, root string, o scanOptions) error {
	if len(o.skipDirs) > 0 && !o.recursive {
		return errors.New("--skip-dirs requires --recursive")
	}

	srcOpts := []source.Option{
		source.WithKeep(o.keep...),
		source.WithSkip(o.skip...),
	}

	var (
		src pipeline.Source
		err error
	)
	if o.recursive {
		srcOpts = append(srcOpts, source.WithSkipDirs(o.skipDirs...))
		src, err = source.FromGlob(root, srcOpts...)
	} else {
		src, err = source.FromDir(root, srcOpts...)
	}
	if err != nil {
		return err
	}

	p := pipeline.New("scan").Pipe(src)

	var reOpts []transform.RegexOption
	if o.ignoreCase {
		reOpts = append(reOpts, transform.IgnoreCase())
	}
	if o.match != "" {
		tf, err := transform.KeepMatching(o.match, reOpts...)
		if err != nil {
			return err
		}
		p.Pipe(tf)
	}
	if o.exclude != "" {
		tf, err := transform.SkipMatching(o.exclude, reOpts...)
		if err != nil {
			return err
		}
		p.Pipe(tf)
	}
	if o.meta {
		p.Pipe(transform.AddMetadata())
	}

	if o.out != "" {
		var fileOpts []sink.FileOption
		if o.appendOut {
			fileOpts = append(fileOpts, sink.Append())
		}
		p.Pipe(sink.ToFile(o.out, fileOpts...))
	} else {
		p.Pipe(sink.ToWriter(cmd.OutOrStdout()))
	}
	if o.jsonOut != "" {
		p.Pipe(sink.ToJSON(o.jsonOut, sink.WithDescription("pipekit scan of "+root)))
	}

	return p.Run(cmd.Context())
}
