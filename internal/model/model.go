package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ErrInvalidResult = errors.New("wurd: invalid result")

// Result is the outcome registered for a card during a session.
type Result int

const (
	Unset Result = iota
	Fail
	Pass
	Skip
)

// SkipCell marks a skipped word in a session column.
const SkipCell = "-"

var resultNames = [...]string{Unset: "", Fail: "fail", Pass: "pass", Skip: "skip"}

func (r Result) IsValid() bool {
	return r >= Unset && r <= Skip
}

func (r Result) String() string {
	if r.IsValid() {
		return resultNames[r]
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Cell returns the value stored in a session column for r.
func (r Result) Cell() string {
	if r == Skip {
		return SkipCell
	}
	return r.String()
}

// ParseCell maps a session column value back to a Result. Unknown values
// report ok=false.
func ParseCell(cell string) (Result, bool) {
	switch strings.TrimSpace(cell) {
	case "":
		return Unset, true
	case "pass":
		return Pass, true
	case "fail":
		return Fail, true
	case SkipCell, "skip":
		return Skip, true
	}
	return Unset, false
}

// HistoryEntry is a pass or fail recorded by an earlier session.
type HistoryEntry struct {
	Result    Result
	Timestamp string
}

// WordRecord is one row of the backing table.
type WordRecord struct {
	Row          int
	Word         string
	PartOfSpeech string
	Context      string
	Definition   string
	Declensions  []string
	Learned      bool
	History      []HistoryEntry
}

type PartOfSpeech struct {
	Abbrev string
	Name   string
	Color  lipgloss.Color
}

var partsOfSpeech = []PartOfSpeech{
	{Abbrev: "n.", Name: "noun", Color: lipgloss.Color("#F07833")},
	{Abbrev: "pron.", Name: "pronoun", Color: lipgloss.Color("#821EFF")},
	{Abbrev: "prop. n.", Name: "proper noun", Color: lipgloss.Color("#FF6666")},
	{Abbrev: "idiom. n.", Name: "idiomatic noun", Color: lipgloss.Color("#0066CC")},
	{Abbrev: "adj.", Name: "adjective", Color: lipgloss.Color("#C4B918")},
	{Abbrev: "v.", Name: "verb", Color: lipgloss.Color("#00992B")},
	{Abbrev: "", Name: "unspecified", Color: lipgloss.Color("#FAFAFA")},
}

// LookupPartOfSpeech finds the entry for abbrev, case-insensitively.
// Unknown abbreviations fall back to the unspecified entry with ok=false.
func LookupPartOfSpeech(abbrev string) (PartOfSpeech, bool) {
	key := strings.ToLower(strings.TrimSpace(abbrev))
	for _, pos := range partsOfSpeech {
		if pos.Abbrev == key {
			return pos, true
		}
	}
	return partsOfSpeech[len(partsOfSpeech)-1], false
}
