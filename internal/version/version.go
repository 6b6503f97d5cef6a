// Package version implements Neight's calendar release numbering.
//
// Releases are numbered YYYY.NNN: the year of the release followed by a
// three-digit sequence within that year, e.g. 2026.003. The sequence
// restarts at 001 each January.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Current is the release this source tree identifies as.
const Current = "2026.003"

// MaxSeq is the highest sequence number a year can hold.
const MaxSeq = 999

var releasePattern = regexp.MustCompile(`^(\d{4})\.(\d{3})$`)

// Release is a parsed calendar release number.
type Release struct {
	Year int
	Seq  int
}

// Parse parses a YYYY.NNN release string.
func Parse(s string) (Release, error) {
	m := releasePattern.FindStringSubmatch(s)
	if m == nil {
		return Release{}, fmt.Errorf("invalid release number %q, want YYYY.NNN", s)
	}
	year, _ := strconv.Atoi(m[1])
	seq, _ := strconv.Atoi(m[2])
	if seq == 0 {
		return Release{}, fmt.Errorf("invalid release number %q, sequence starts at 001", s)
	}
	return Release{Year: year, Seq: seq}, nil
}

// String formats the release as YYYY.NNN.
func (r Release) String() string {
	return fmt.Sprintf("%04d.%03d", r.Year, r.Seq)
}

// Compare returns -1, 0, or 1 ordering r against o chronologically.
func (r Release) Compare(o Release) int {
	switch {
	case r.Year != o.Year:
		if r.Year < o.Year {
			return -1
		}
		return 1
	case r.Seq != o.Seq:
		if r.Seq < o.Seq {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Next returns the release that follows r at the given time: the next
// sequence number within the same year, or YYYY.001 when the year has
// rolled over since r.
func (r Release) Next(now time.Time) (Release, error) {
	year := now.Year()
	if year != r.Year {
		return Release{Year: year, Seq: 1}, nil
	}
	if r.Seq >= MaxSeq {
		return Release{}, fmt.Errorf("release sequence for %d exhausted at %03d", r.Year, MaxSeq)
	}
	return Release{Year: year, Seq: r.Seq + 1}, nil
}
