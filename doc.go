// Package linemax computes, for every line of a large newline-delimited file,
// the highest printable-ASCII byte (32..126) in that line, using several
// workers in parallel, and reports the results in original line order.
//
// The file is split into byte chunks, each chunk is shifted forward to the
// next line start to form an ownership window, every worker scans its own
// window, and the per-worker results are concatenated by worker rank using a
// prefix sum over their line counts. Completion order never matters.
//
// The library is organised into several files for clarity:
//
//	options.go          – configuration struct & defaults
//	config.go           – JSON file and environment overlays
//	errors.go           – error classes & exit codes
//	source.go           – FileSource interface, pread & in-memory backends
//	source_mmap_*.go    – unix.Mmap backend (x/exp/mmap fallback elsewhere)
//	source_reader.go    – x/exp/mmap ReaderAt backend
//	partition.go        – byte ranges & nominal chunks
//	align.go            – line-start alignment of chunks into windows
//	plan.go             – window and indexed plans
//	window_lookup.go    – helper to locate the window owning an offset
//	buffer.go           – pooled read blocks
//	seq.go              – per-worker growable result sequence
//	scan.go             – line scanner
//	collect.go          – rank-ordered merge
//	report.go           – "<index>: <max>" output
//	run.go              – worker group & end-to-end processing
//	stats.go            – run statistics
//
// Typical use:
//
//	opts := linemax.DefaultOptions()
//	opts.Workers = 8
//	if _, err := linemax.ProcessFile(ctx, "input.txt", opts, os.Stdout); err != nil {
//		os.Exit(linemax.ExitCode(err))
//	}
package linemax
