package runner

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	runIDSuffixBytes = 6
	runIDTimeLayout  = "20060102T150405Z"
)

// NewRunID returns a run identifier: the UTC start time plus random hex.
func NewRunID(now time.Time) (string, error) {
	return NewRunIDWithRand(now, rand.Reader)
}

// NewRunIDWithRand builds a run id from an explicit clock reading and source.
func NewRunIDWithRand(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	buf := make([]byte, runIDSuffixBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return FormatRunID(now, hex.EncodeToString(buf)), nil
}

func FormatRunID(now time.Time, suffix string) string {
	return now.UTC().Format(runIDTimeLayout) + "-" + suffix
}

// RunIDTime extracts the start time encoded in a generated run id.
func RunIDTime(runID string) (time.Time, bool) {
	stamp, _, ok := strings.Cut(runID, "-")
	if !ok {
		return time.Time{}, false
	}
	parsed, err := time.Parse(runIDTimeLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// CompareRunIDs orders run ids oldest first. Generated ids compare by start
// time and sort after hand-named run directories, which compare by name.
func CompareRunIDs(a, b string) int {
	at, aok := RunIDTime(a)
	bt, bok := RunIDTime(b)
	switch {
	case aok && bok:
		if c := at.Compare(bt); c != 0 {
			return c
		}
	case aok:
		return 1
	case bok:
		return -1
	}
	return strings.Compare(a, b)
}
