// Package translator holds the fixed word to gesture vocabulary.
package translator

import "strings"

type Entry struct {
	Word    string `json:"word"`
	Gesture string `json:"gesture"`
}

// Dictionary is read-only after construction and safe for concurrent use.
type Dictionary struct {
	entries []Entry
	byWord  map[string]int
}

func New(entries []Entry) *Dictionary {
	d := &Dictionary{
		entries: make([]Entry, 0, len(entries)),
		byWord:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		e.Word = strings.ToLower(strings.TrimSpace(e.Word))
		if _, dup := d.byWord[e.Word]; dup || e.Word == "" {
			continue
		}
		d.byWord[e.Word] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d
}

var defaultEntries = []Entry{
	{"hello", "Wave hand with open palm"},
	{"thank_you", "Bring hand to chin and move downward"},
	{"yes", "Nod head while making fist"},
	{"no", "Shake head side to side"},
	{"love", "Cross hands over heart"},
	{"friend", "Link fingers together"},
	{"help", "Raise hand with open palm"},
	{"please", "Place hand on chest and circle"},
	{"sorry", "Make fist and circle on chest"},
	{"water", "Make W shape with hand near mouth"},
	{"food", "Bring fingers to mouth"},
	{"sleep", "Tilt head on hand"},
	{"work", "Knock fist on fist"},
	{"play", "Shake both hands open"},
	{"happy", "Brush hand up face twice"},
}

// Default returns the built-in vocabulary.
func Default() *Dictionary {
	return New(defaultEntries)
}

// Lookup finds the gesture for word, ignoring case and surrounding space.
func (d *Dictionary) Lookup(word string) (Entry, bool) {
	i, ok := d.byWord[strings.ToLower(strings.TrimSpace(word))]
	if !ok {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Reverse returns the first entry whose gesture contains the description or
// is contained in it.
func (d *Dictionary) Reverse(description string) (Entry, bool) {
	q := strings.ToLower(strings.TrimSpace(description))
	if q == "" {
		return Entry{}, false
	}
	for _, e := range d.entries {
		g := strings.ToLower(e.Gesture)
		if strings.Contains(g, q) || strings.Contains(q, g) {
			return e, true
		}
	}
	return Entry{}, false
}

// Words lists the vocabulary in order.
func (d *Dictionary) Words() []string {
	words := make([]string, len(d.entries))
	for i, e := range d.entries {
		words[i] = e.Word
	}
	return words
}

func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Dictionary) Len() int { return len(d.entries) }
