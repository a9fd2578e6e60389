// Command minire matches subjects against a pattern with the minire engine.
//
// Subjects are taken from the arguments after the pattern, or read from
// standard input one line at a time. Matching subjects are printed; with -o
// the match and its groups are printed instead.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/coregx/minire"
	"github.com/coregx/minire/prog"
)

// Exit codes follow grep: 0 when something matched, 1 when nothing did.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

type options struct {
	verbosity   int
	configPath  string
	dump        bool
	envelope    bool
	strict      bool
	noPrefilter bool
	only        bool
	stats       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("minire", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.verbosity, "v", 0, "Log verbosity (1 info, 2 debug)")
	fs.StringVar(&opts.configPath, "config", "", "TOML config file")
	fs.BoolVar(&opts.dump, "dump", false, "Print the compiled program and exit")
	fs.BoolVar(&opts.envelope, "envelope", false, "Read the pattern as /pattern/g")
	fs.BoolVar(&opts.strict, "strict", false, "Reject inverted {m,n} bounds")
	fs.BoolVar(&opts.noPrefilter, "no-prefilter", false, "Disable literal prefiltering")
	fs.BoolVar(&opts.only, "o", false, "Print the match span and groups instead of the subject")
	fs.BoolVar(&opts.stats, "stats", false, "Print search statistics to stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: minire [options] pattern [subject...]\n\n")
		fmt.Fprintf(stderr, "Reads subjects from stdin, one per line, when none are given.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  minire 'ab+c' xabbbc            # prints xabbbc\n")
		fmt.Fprintf(stderr, "  minire -o '(\\d+)-(\\d+)' 10-20   # prints the match and both groups\n")
		fmt.Fprintf(stderr, "  minire -envelope '/t.*en/g' tilen\n")
		fmt.Fprintf(stderr, "  minire -dump '^(ab|c)+d'\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitMatch
		}
		return exitError
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return exitError
	}

	commonlog.Configure(opts.verbosity, nil)

	re, err := compile(fs.Arg(0), opts)
	if err != nil {
		fmt.Fprintf(stderr, "minire: %v\n", err)
		return exitError
	}
	if opts.dump {
		fmt.Fprint(stdout, re.Program())
		return exitMatch
	}

	var subjects func(yield func(string) bool) error
	if fs.NArg() > 1 {
		rest := fs.Args()[1:]
		subjects = func(yield func(string) bool) error {
			for _, s := range rest {
				if !yield(s) {
					break
				}
			}
			return nil
		}
	} else {
		subjects = func(yield func(string) bool) error {
			scanner := bufio.NewScanner(stdin)
			for scanner.Scan() {
				if !yield(scanner.Text()) {
					break
				}
			}
			return scanner.Err()
		}
	}

	code := exitNoMatch
	var searchErr error
	err = subjects(func(s string) bool {
		matched, err := report(stdout, re, s, opts.only)
		if err != nil {
			searchErr = err
			return false
		}
		if matched {
			code = exitMatch
		}
		return true
	})
	if err == nil {
		err = searchErr
	}

	if opts.stats {
		st := re.Stats()
		fmt.Fprintf(stderr, "searches=%d literal=%d prefilter-hits=%d prefilter-misses=%d aborts=%d\n",
			st.Searches, st.LiteralSearches, st.PrefilterHits, st.PrefilterMisses, st.Aborts)
	}
	if err != nil {
		fmt.Fprintf(stderr, "minire: %v\n", err)
		return exitError
	}
	return code
}

// compile builds the regex for pattern according to opts.
func compile(pattern string, opts options) (*minire.Regex, error) {
	config, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.strict {
		config.StrictBraces = true
	}
	if opts.noPrefilter {
		config.EnablePrefilter = false
	}

	if opts.envelope {
		pattern, _, err = minire.ParseEnvelope(pattern)
		if err != nil {
			return nil, err
		}
		if err := minire.CheckBrackets(pattern); err != nil {
			return nil, err
		}
	}
	return minire.CompileWithConfig(pattern, config)
}

// report prints s when it matches re. In only mode it prints the match
// span, the matched text and each group instead; groups that did not
// participate print as "-".
func report(w io.Writer, re *minire.Regex, s string, only bool) (bool, error) {
	caps := make([]prog.Span, re.NumSubexp())
	start, end, err := re.CapturesIndex(s, caps)
	if err != nil || start < 0 {
		return false, err
	}
	if !only {
		fmt.Fprintln(w, s)
		return true, nil
	}
	fmt.Fprintf(w, "%d-%d\t%s", start, end, s[start:end])
	for _, sp := range caps {
		if !sp.Valid() {
			fmt.Fprint(w, "\t-")
			continue
		}
		fmt.Fprintf(w, "\t%s", s[sp.Offset:sp.End()])
	}
	fmt.Fprintln(w)
	return true, nil
}
