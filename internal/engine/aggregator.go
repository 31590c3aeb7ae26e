package engine

import (
	"cmp"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Below this many rows a single goroutine does the grouping.
const minParallelRows = 4096

// Group is one row of a group-by result: the group's key values in the
// order of the grouping fields, and the aggregated value.
type Group struct {
	Keys  []string
	Value float64
}

// Key returns the i-th key, or "" when out of range.
func (g Group) Key(i int) string {
	if i < 0 || i >= len(g.Keys) {
		return ""
	}
	return g.Keys[i]
}

// Order is the direction a ranking is sorted in.
type Order int

const (
	Descending Order = iota
	Ascending
)

// SortKey is one key of a multi-key row sort.
type SortKey struct {
	Field     Field
	Ascending bool
}

// Desc sorts by f, largest first.
func Desc(f Field) SortKey { return SortKey{Field: f} }

// Asc sorts by f, smallest first.
func Asc(f Field) SortKey { return SortKey{Field: f, Ascending: true} }

type accum struct {
	keys     []string
	sum      float64
	n        int
	distinct map[string]struct{}
}

func (a *accum) merge(b *accum) {
	a.sum += b.sum
	a.n += b.n
	if b.distinct != nil {
		if a.distinct == nil {
			a.distinct = make(map[string]struct{}, len(b.distinct))
		}
		for k := range b.distinct {
			a.distinct[k] = struct{}{}
		}
	}
}

const keySep = "\x1f"

// accumulate groups rows by the given fields, applying add to each row's
// group. Large inputs are split into per-worker partials that are merged
// afterwards; rows are only read.
func accumulate(rows []Record, by []Field, add func(a *accum, r *Record)) map[string]*accum {
	numWorkers := runtime.NumCPU()
	if len(rows) < minParallelRows || numWorkers < 2 {
		return accumulateRange(rows, by, add)
	}

	chunkSize := (len(rows) + numWorkers - 1) / numWorkers
	partials := make([]map[string]*accum, (len(rows)+chunkSize-1)/chunkSize)
	var wg sync.WaitGroup

	for w := range partials {
		start := w * chunkSize
		end := min(start+chunkSize, len(rows))
		wg.Add(1)
		go func() {
			defer wg.Done()
			partials[w] = accumulateRange(rows[start:end], by, add)
		}()
	}
	wg.Wait()

	// Merge in chunk order so float sums do not depend on scheduling.
	final := partials[0]
	for _, p := range partials[1:] {
		for k, a := range p {
			if f, ok := final[k]; ok {
				f.merge(a)
			} else {
				final[k] = a
			}
		}
	}
	return final
}

func accumulateRange(rows []Record, by []Field, add func(a *accum, r *Record)) map[string]*accum {
	groups := make(map[string]*accum)
	keys := make([]string, len(by))
	for i := range rows {
		r := &rows[i]
		for j, f := range by {
			keys[j] = r.Text(f)
		}
		k := strings.Join(keys, keySep)
		a, ok := groups[k]
		if !ok {
			a = &accum{keys: append([]string(nil), keys...)}
			groups[k] = a
		}
		add(a, r)
	}
	return groups
}

// rank turns accumulated groups into a sorted result. value reports false
// for groups that must not appear. Ties are broken by key, ascending.
func rank(groups map[string]*accum, order Order, value func(a *accum) (float64, bool)) []Group {
	out := make([]Group, 0, len(groups))
	for _, a := range groups {
		v, ok := value(a)
		if !ok {
			continue
		}
		out = append(out, Group{Keys: a.keys, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			if order == Ascending {
				return out[i].Value < out[j].Value
			}
			return out[i].Value > out[j].Value
		}
		return compareKeys(out[i].Keys, out[j].Keys) < 0
	})
	return out
}

func compareKeys(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// CountDistinct counts the distinct values of of per group, largest first.
func CountDistinct(rows []Record, by []Field, of Field) []Group {
	groups := accumulate(rows, by, func(a *accum, r *Record) {
		if a.distinct == nil {
			a.distinct = make(map[string]struct{})
		}
		a.distinct[r.Text(of)] = struct{}{}
	})
	return rank(groups, Descending, func(a *accum) (float64, bool) {
		return float64(len(a.distinct)), true
	})
}

// CountRows counts rows per group, largest first.
func CountRows(rows []Record, by []Field) []Group {
	groups := accumulate(rows, by, func(a *accum, _ *Record) { a.n++ })
	return rank(groups, Descending, func(a *accum) (float64, bool) {
		return float64(a.n), true
	})
}

// Mean averages of per group. Groups with no numeric value are absent.
func Mean(rows []Record, by []Field, of Field, order Order) []Group {
	groups := accumulate(rows, by, addNumber(of))
	return rank(groups, order, meanOf)
}

// ThresholdCount counts, per group, the entities whose mean of passes
// pred. Each (group, entity) pair is first collapsed to its mean so an
// entity listed several times in a group counts once. Groups with no
// passing entity are absent.
func ThresholdCount(rows []Record, by []Field, entity Field, of Field, pred func(float64) bool) []Group {
	perEntity := accumulate(rows, append(append([]Field(nil), by...), entity), addNumber(of))

	counts := make(map[string]*accum)
	for _, a := range perEntity {
		m, ok := meanOf(a)
		if !ok || !pred(m) {
			continue
		}
		groupKeys := a.keys[:len(by)]
		k := strings.Join(groupKeys, keySep)
		c, ok := counts[k]
		if !ok {
			c = &accum{keys: append([]string(nil), groupKeys...)}
			counts[k] = c
		}
		c.n++
	}
	return rank(counts, Descending, func(a *accum) (float64, bool) {
		return float64(a.n), true
	})
}

// Above matches values strictly greater than x.
func Above(x float64) func(float64) bool { return func(v float64) bool { return v > x } }

// Below matches values strictly less than x.
func Below(x float64) func(float64) bool { return func(v float64) bool { return v < x } }

// addNumber sums a numeric field into a group. NaN cells are skipped.
func addNumber(of Field) func(a *accum, r *Record) {
	return func(a *accum, r *Record) {
		if v, ok := r.Number(of); ok && !math.IsNaN(v) {
			a.sum += v
			a.n++
		}
	}
}

func meanOf(a *accum) (float64, bool) {
	if a.n == 0 {
		return 0, false
	}
	return a.sum / float64(a.n), true
}

// Head returns at most the first n groups.
func Head(groups []Group, n int) []Group {
	if n < 0 {
		n = 0
	}
	if n < len(groups) {
		return groups[:n]
	}
	return groups
}

// TopN sorts a copy of rows by keys (stable, so remaining ties keep input
// order) and returns the first n.
func TopN(rows []Record, n int, keys ...SortKey) []Record {
	if n <= 0 {
		return []Record{}
	}
	sorted := append([]Record(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		for _, k := range keys {
			c := compareField(&sorted[i], &sorted[j], k.Field)
			if c == 0 {
				continue
			}
			if k.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func compareField(a, b *Record, f Field) int {
	if x, ok := a.Number(f); ok {
		y, _ := b.Number(f)
		return cmp.Compare(x, y)
	}
	return strings.Compare(a.Text(f), b.Text(f))
}

// BestInCategory returns the row with category == value ranked first by
// primary then secondary, both descending. ok is false when no row
// belongs to the category.
func BestInCategory(rows []Record, category Field, value string, primary, secondary Field) (best Record, ok bool) {
	var match []Record
	for _, r := range rows {
		if r.Text(category) == value {
			match = append(match, r)
		}
	}
	top := TopN(match, 1, Desc(primary), Desc(secondary))
	if len(top) == 0 {
		return Record{}, false
	}
	return top[0], true
}

// Exclude drops rows whose field f equals one of values.
func Exclude(rows []Record, f Field, values ...string) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		skip := false
		for _, v := range values {
			if r.Text(f) == v {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, r)
		}
	}
	return out
}

// Distinct counts the distinct values of f.
func Distinct(rows []Record, f Field) int {
	seen := make(map[string]struct{})
	for i := range rows {
		seen[rows[i].Text(f)] = struct{}{}
	}
	return len(seen)
}

// Sum adds up a numeric field, skipping NaN.
func Sum(rows []Record, f Field) float64 {
	var total float64
	for i := range rows {
		if v, ok := rows[i].Number(f); ok && !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// Average is the mean of a numeric field over all rows. ok is false when
// there is nothing to average.
func Average(rows []Record, f Field) (avg float64, ok bool) {
	a := &accum{}
	add := addNumber(f)
	for i := range rows {
		add(a, &rows[i])
	}
	return meanOf(a)
}
