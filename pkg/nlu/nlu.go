// Package nlu parses natural-language arm commands into structured
// pick-and-place requests: "grab the red one and put it a little to the
// left" becomes a target selector plus a drop offset in meters.
package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

// Task kinds.
const (
	TaskPickPlace = "pick_place"
	TaskNudge     = "nudge"
	TaskOpen      = "open"
	TaskClose     = "close"
)

// Target selector kinds.
const (
	TargetNearest = "nearest"
	TargetColor   = "color"
	TargetLabel   = "label"
)

// Target selects which detected object the command refers to.
type Target struct {
	Kind  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// Drop is where the object goes, as a relative offset in meters
// (x right positive, y forward positive).
type Drop struct {
	Mode string  `json:"mode"`
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
}

// Command is a parsed arm command.
type Command struct {
	Task   string `json:"task"`
	Target Target `json:"target"`
	Drop   Drop   `json:"drop"`
}

// defaultDistance is what "a little" means.
const defaultDistance = 0.03

var colors = []string{"red", "green", "blue", "yellow", "orange", "purple", "black", "white"}

func compileWords(words []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		res[i] = regexp.MustCompile(`\b` + w + `\b`)
	}
	return res
}

var colorRes = compileWords(colors)

// Object labels the detector knows, plus spoken aliases.
var (
	labelRe       = regexp.MustCompile(`\b(apple|marker|cube|block|cap|screw|bottle|canada dry|canada|soda|drink)\b`)
	bottleAliases = map[string]bool{"canada dry": true, "canada": true, "soda": true, "drink": true}
)

var (
	leftRes  = compileWords([]string{"left", "west"})
	rightRes = compileWords([]string{"right", "east"})
	fwdRes   = compileWords([]string{"forward", "ahead", "up"})
	backRes  = compileWords([]string{"back", "backward", "down"})
)

var (
	littleRe   = regexp.MustCompile(`\b(little|bit|slight|slightly)\b`)
	distanceRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(mm|millimeter|cm|centimeter|m|meter)s?\b`)
	nudgeRe    = regexp.MustCompile(`\b(nudge|move|shift)\b`)
	grabRe     = regexp.MustCompile(`\b(grab|pick|take)\b`)
	openRe     = regexp.MustCompile(`\bopen\b`)
	closeRe    = regexp.MustCompile(`\bclose\b`)
)

// Parse parses a natural-language command.
//
// Examples:
//
//	"grab the red one and put it a little to the left"
//	"pick the bottle and move 5 cm forward"
//	"nudge that 3 cm right"
func Parse(text string) Command {
	t := strings.ToLower(text)

	target := parseTarget(t)
	dx, dy := parseOffset(t)

	if nudgeRe.MatchString(t) && !grabRe.MatchString(t) {
		return Command{
			Task:   TaskNudge,
			Target: target,
			Drop:   Drop{Mode: "relative", DX: dx, DY: dy},
		}
	}
	if openRe.MatchString(t) {
		return Command{Task: TaskOpen, Target: Target{Kind: TargetNearest}}
	}
	if closeRe.MatchString(t) {
		return Command{Task: TaskClose, Target: Target{Kind: TargetNearest}}
	}

	return Command{
		Task:   TaskPickPlace,
		Target: target,
		Drop:   Drop{Mode: "relative", DX: dx, DY: dy},
	}
}

func parseTarget(t string) Target {
	for i, re := range colorRes {
		if re.MatchString(t) {
			return Target{Kind: TargetColor, Value: colors[i]}
		}
	}
	if m := labelRe.FindString(t); m != "" {
		if bottleAliases[m] {
			m = "bottle"
		}
		return Target{Kind: TargetLabel, Value: m}
	}
	return Target{Kind: TargetNearest}
}

func parseOffset(t string) (dx, dy float64) {
	d := parseDistance(t)
	if matchesAny(t, leftRes) {
		dx -= d
	}
	if matchesAny(t, rightRes) {
		dx += d
	}
	if matchesAny(t, fwdRes) {
		dy += d
	}
	if matchesAny(t, backRes) {
		dy -= d
	}
	return dx, dy
}

// parseDistance pulls a distance out of the text: an explicit quantity
// with a unit, or "a little" and friends meaning 3cm.
func parseDistance(t string) float64 {
	if littleRe.MatchString(t) {
		return defaultDistance
	}
	m := distanceRe.FindStringSubmatch(t)
	if m == nil {
		return defaultDistance
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return defaultDistance
	}
	switch {
	case strings.HasPrefix(m[2], "mm"):
		return val / 1000
	case strings.HasPrefix(m[2], "cm"):
		return val / 100
	default:
		return val
	}
}

func matchesAny(t string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}
