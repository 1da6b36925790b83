// Command file_stats analyzes a single text file and prints its statistics
// as a JSON record on stdout. The record shape and the exit code are the
// whole interface: callers (agent runtimes, shell scripts) parse stdout and
// check the exit status, nothing else.
package main

import (
	"io"
	"os"

	"filestats/internal/analyzer"
	"filestats/internal/record"
)

const usageMessage = "Usage: file_stats <filename>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes one analysis and writes exactly one record to out. Errors are
// reported as error records, never as bare text, so output stays parseable.
func run(args []string, out io.Writer) int {
	if len(args) != 1 {
		record.Write(out, record.NewFailure(usageMessage))
		return 1
	}

	stats, err := analyzer.Analyze(args[0])
	if err != nil {
		record.Write(out, record.FailureFromError(err))
		return 1
	}

	err = record.Write(out, record.FromStats(stats))
	if err != nil {
		return 1
	}

	return 0
}
