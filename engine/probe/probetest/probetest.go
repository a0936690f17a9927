/*
Package probetest provides deterministic text measurers for tests.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package probetest

import (
	"errors"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/npillmayer/glyphscope/engine/probe"
)

// Box sizes returned by Measurer: Covered for characters the family
// supplies, Fallback for everything else.
var (
	Covered  = probe.Dimensions{Width: 12, Height: 20}
	Fallback = probe.Dimensions{Width: 10, Height: 20}
)

// ErrMeasure is returned by Measurer for characters set up to fail.
var ErrMeasure = errors.New("measurement failed")

// Measurer emulates a font family covering a set of characters. Measuring a
// stack headed by Family yields Covered for characters in the set, while
// any other measurement yields Fallback.
type Measurer struct {
	Family string
	Covers func(rune) bool
	Fails  func(rune) bool // optional
	calls  int64
}

var _ probe.TextMeasurer = (*Measurer)(nil)

// Covering creates a measurer for family covering the given characters.
func Covering(family string, runes ...rune) *Measurer {
	set := make(map[rune]bool, len(runes))
	for _, r := range runes {
		set[r] = true
	}
	return &Measurer{
		Family: family,
		Covers: func(r rune) bool { return set[r] },
	}
}

// Measure implements probe.TextMeasurer.
func (m *Measurer) Measure(text string, stack []string) (probe.Dimensions, error) {
	atomic.AddInt64(&m.calls, 1)
	if len(stack) == 0 {
		return probe.Dimensions{}, ErrMeasure
	}
	r, _ := utf8.DecodeRuneInString(text)
	if m.Fails != nil && m.Fails(r) {
		return probe.Dimensions{}, ErrMeasure
	}
	if strings.EqualFold(stack[0], m.Family) && m.Covers != nil && m.Covers(r) {
		return Covered, nil
	}
	return Fallback, nil
}

// Calls returns the number of calls to Measure so far.
func (m *Measurer) Calls() int {
	return int(atomic.LoadInt64(&m.calls))
}

// Table is a measurer returning fixed dimensions per text and stack.
// Unknown combinations fail.
type Table map[string]probe.Dimensions

// Key creates the lookup key of Table for a text and a font stack.
func Key(text string, stack ...string) string {
	return strings.Join(stack, ",") + "|" + text
}

// Measure implements probe.TextMeasurer.
func (t Table) Measure(text string, stack []string) (probe.Dimensions, error) {
	if d, ok := t[Key(text, stack...)]; ok {
		return d, nil
	}
	return probe.Dimensions{}, ErrMeasure
}
