// Package stage maps free-text funding descriptions onto a closed set of
// canonical funding stages.
package stage

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Stage is a canonical funding stage. The zero value is Unclassified.
type Stage int

// Canonical stages in domain order. Unclassified sorts after all of them.
const (
	Unclassified Stage = iota
	PreSeed
	Seed
	SeriesA
	SeriesB
	SeriesC
	SeriesD
	SeriesE
	SeriesF
)

// UnclassifiedLabel is the text form of Unclassified.
const UnclassifiedLabel = "Unclassified"

var labels = map[Stage]string{
	PreSeed: "Pre-Seed",
	Seed:    "Seed",
	SeriesA: "Series A",
	SeriesB: "Series B",
	SeriesC: "Series C",
	SeriesD: "Series D",
	SeriesE: "Series E",
	SeriesF: "Series F",
}

// byLower maps a lowercased canonical label to its stage
var byLower = func() map[string]Stage {
	m := make(map[string]Stage, len(labels))
	for s, l := range labels {
		m[strings.ToLower(l)] = s
	}
	return m
}()

// stagePattern lists Pre-Seed before Seed so "pre-seed" never reports Seed.
var stagePattern = regexp.MustCompile(`(?i)(pre-seed|seed|series [a-f])`)

// Known returns the selectable stages in domain order.
func Known() []Stage {
	return []Stage{PreSeed, Seed, SeriesA, SeriesB, SeriesC, SeriesD, SeriesE, SeriesF}
}

// Parse returns the first canonical stage mentioned anywhere in raw,
// case-insensitively. Amounts and qualifiers around the label are ignored.
// Parse never fails: text without a recognizable label is Unclassified.
func Parse(raw string) Stage {
	if raw == "" {
		return Unclassified
	}
	m := stagePattern.FindStringSubmatch(raw)
	if m == nil {
		return Unclassified
	}
	if s, ok := byLower[strings.ToLower(m[1])]; ok {
		return s
	}
	return Unclassified
}

// FromLabel resolves an exact canonical label (any case). Unclassified and
// unknown labels report ok=false.
func FromLabel(label string) (Stage, bool) {
	s, ok := byLower[strings.ToLower(strings.TrimSpace(label))]
	return s, ok
}

// String returns the canonical label.
func (s Stage) String() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return UnclassifiedLabel
}

// IsClassified reports whether s is one of the selectable stages.
func (s Stage) IsClassified() bool {
	_, ok := labels[s]
	return ok
}

// rank places Unclassified (and anything out of range) after every known stage.
func (s Stage) rank() int {
	if !s.IsClassified() {
		return int(SeriesF) + 1
	}
	return int(s)
}

// Less orders stages by funding sequence.
func (s Stage) Less(other Stage) bool {
	return s.rank() < other.rank()
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Only canonical labels
// and "Unclassified" are accepted.
func (s *Stage) UnmarshalText(text []byte) error {
	label := string(text)
	if st, ok := FromLabel(label); ok {
		*s = st
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(label), UnclassifiedLabel) {
		*s = Unclassified
		return nil
	}
	return fmt.Errorf("unknown funding stage %q", label)
}

// Compare orders stage labels: known labels by funding sequence, unknown
// labels after them in lexicographic order.
func Compare(a, b string) int {
	sa, okA := labelIndex(a)
	sb, okB := labelIndex(b)
	switch {
	case !okA && !okB:
		return strings.Compare(a, b)
	case !okA:
		return 1
	case !okB:
		return -1
	case sa.Less(sb):
		return -1
	case sb.Less(sa):
		return 1
	}
	return 0
}

// labelIndex only accepts exact canonical labels.
func labelIndex(label string) (Stage, bool) {
	for s, l := range labels {
		if l == label {
			return s, true
		}
	}
	return Unclassified, false
}

// SortLabels sorts labels in place using Compare.
func SortLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return Compare(labels[i], labels[j]) < 0
	})
}
