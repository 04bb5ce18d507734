package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/pprof/profile"
)

// Top returns an output similar to the pprof top command: one line per
// function with flat and cumulative constraint counts, heaviest first.
func (p *Profile) Top() string {
	type node struct {
		fn   *profile.Function
		line int64
		flat int64
		cum  int64
	}

	var total int64
	nodes := make(map[*profile.Function]*node)

	for _, sample := range p.pprof.Sample {
		v := sample.Value[0]
		total += v
		seen := make(map[*profile.Function]bool)
		for i, loc := range sample.Location {
			if len(loc.Line) == 0 {
				continue
			}
			ln := loc.Line[0]
			nd, ok := nodes[ln.Function]
			if !ok {
				nd = &node{fn: ln.Function, line: ln.Line}
				nodes[ln.Function] = nd
			}
			if i == 0 {
				nd.flat += v
			}
			// cumulative counts each sample once, however often the
			// function recurses within it
			if !seen[ln.Function] {
				nd.cum += v
				seen[ln.Function] = true
			}
		}
	}

	list := make([]*node, 0, len(nodes))
	var shown int64
	for _, nd := range nodes {
		if nd.flat > 0 {
			list = append(list, nd)
			shown += nd.flat
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].flat != list[j].flat {
			return list[i].flat > list[j].flat
		}
		if list[i].cum != list[j].cum {
			return list[i].cum > list[j].cum
		}
		return list[i].fn.Name < list[j].fn.Name
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Showing nodes accounting for %d, %s of %d total\n", shown, percent(shown, total), total)
	sb.WriteString("      flat  flat%   sum%        cum   cum%\n")
	var sum int64
	for _, nd := range list {
		sum += nd.flat
		fmt.Fprintf(&sb, "%10d %6s %6s %10d %6s  %s %s:%d\n",
			nd.flat, percent(nd.flat, total), percent(sum, total),
			nd.cum, percent(nd.cum, total),
			nd.fn.Name, shortFileName(nd.fn.Filename), nd.line)
	}
	return sb.String()
}

func percent(value, total int64) string {
	if total == 0 {
		return "0%"
	}
	ratio := 100 * float64(value) / float64(total)
	if ratio == 100 {
		return "100%"
	}
	return fmt.Sprintf("%.2f%%", ratio)
}

// shortFileName keeps the last two path elements, which is usually enough to
// identify a file without drowning the table.
func shortFileName(file string) string {
	i := strings.LastIndexByte(file, '/')
	if i < 0 {
		return file
	}
	j := strings.LastIndexByte(file[:i], '/')
	return file[j+1:]
}
