package format

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/dhamidi/hermes/jpql/parser"
)

var testcasesFile string
var testFilter string

func init() {
	flag.StringVar(&testcasesFile, "testcases", "../jpql/parser/testdata/valid.jpql", "file with one JPQL query per line")
	flag.StringVar(&testFilter, "filter", "", "only run queries containing this substring")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testcases formats every query of the testcases file and
// parses the result again. The formatted query must parse cleanly, contain
// the same expressions, and format to itself.
func TestRoundTrip_Testcases(t *testing.T) {
	queries, err := readQueries(testcasesFile)
	if err != nil {
		t.Fatalf("failed to read testcases: %v", err)
	}
	if len(queries) == 0 {
		t.Skipf("no queries found in %s", testcasesFile)
	}

	for i, query := range queries {
		if testFilter != "" && !strings.Contains(query, testFilter) {
			continue
		}
		t.Run(fmt.Sprintf("%02d", i+1), func(t *testing.T) {
			runRoundTripTest(t, query)
		})
	}
}

func runRoundTripTest(t *testing.T, query string) {
	orig := parser.ParseQuery(query, parser.WithTolerant())
	if hasParseErrors(orig) {
		t.Skipf("original query has parse errors: %s", query)
	}

	formatted := NewJPQLPrinter(nil).Format(orig)
	again := parser.ParseQuery(formatted, parser.WithTolerant())
	if hasParseErrors(again) {
		t.Fatalf("formatted output has parse errors!\n\noriginal:  %s\nformatted: %s", query, formatted)
	}

	diffs := compareKindCounts(countKinds(orig), countKinds(again))
	if len(diffs) > 0 {
		t.Errorf("expression count mismatch after formatting %q:\n\n%s", formatted, formatDiffs(diffs))
	}
	if got, want := parser.Dump(again), parser.Dump(orig); got != want {
		t.Errorf("tree changed after formatting\n--- original\n%s--- formatted\n%s", want, got)
	}
	if twice := NewJPQLPrinter(nil).Format(again); twice != formatted {
		t.Errorf("formatting is not stable:\nfirst:  %s\nsecond: %s", formatted, twice)
	}
}

func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	return queries, scanner.Err()
}

// KindCountDiff is a difference in expression counts between the original
// and the formatted tree.
type KindCountDiff struct {
	Kind      parser.Kind
	Original  int
	Formatted int
}

func countKinds(root parser.Expression) map[parser.Kind]int {
	counts := make(map[parser.Kind]int)
	parser.Inspect(root, func(e parser.Expression) bool {
		counts[e.Kind()]++
		return true
	})
	return counts
}

func hasParseErrors(root parser.Expression) bool {
	found := false
	parser.Inspect(root, func(e parser.Expression) bool {
		switch e.Kind() {
		case parser.KindBad, parser.KindUnknownEnding, parser.KindNull:
			found = true
		}
		return !found
	})
	return found
}

func compareKindCounts(original, formatted map[parser.Kind]int) []KindCountDiff {
	var diffs []KindCountDiff

	allKinds := make(map[parser.Kind]bool)
	for k := range original {
		allKinds[k] = true
	}
	for k := range formatted {
		allKinds[k] = true
	}

	for kind := range allKinds {
		if original[kind] != formatted[kind] {
			diffs = append(diffs, KindCountDiff{
				Kind:      kind,
				Original:  original[kind],
				Formatted: formatted[kind],
			})
		}
	}

	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Kind < diffs[j].Kind
	})
	return diffs
}

func formatDiffs(diffs []KindCountDiff) string {
	var sb strings.Builder
	sb.WriteString("Kind                          Original  Formatted  Delta\n")
	sb.WriteString("------------------------------------------------------------\n")
	for _, d := range diffs {
		delta := d.Formatted - d.Original
		sign := "+"
		if delta < 0 {
			sign = ""
		}
		sb.WriteString(fmt.Sprintf("%-30s %8d  %9d  %s%d\n",
			d.Kind.String(), d.Original, d.Formatted, sign, delta))
	}
	return sb.String()
}
