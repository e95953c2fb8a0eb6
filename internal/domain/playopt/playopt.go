// Package playopt decodes raw play-option strings into structured fields.
//
// A raw string looks like "R-RAN/MIR,FLIP" or "OFF": the first comma segment
// carries the side modifiers (left, optionally /right), the remaining tokens
// are independent flags. Dots are accepted as list separators because the
// source data uses both.
package playopt

import "strings"

// Flag literals searched for anywhere in the raw string.
const (
	flagFlip        = "FLIP"
	flagLegacy      = "LEGACY"
	flagAssistScore = "A-SCR"

	offSentinel = "OFF"
)

// Fields is the decoded form of one raw option string. Side modifiers hold a
// member of the allowed modifier set or are empty; the flags report token
// presence.
type Fields struct {
	Left        string
	Right       string
	Flip        bool
	Legacy      bool
	AssistScore bool
}

// Decoder validates side-modifier tokens against an abbreviation table and an
// allowed set. The zero-value tables match the source game's modifiers.
type Decoder struct {
	aliases map[string]string
	allowed map[string]bool
}

// Option applies a configuration option to the Decoder.
type Option func(*Decoder)

// WithAliases replaces the abbreviation table.
func WithAliases(aliases map[string]string) Option {
	return func(d *Decoder) {
		if len(aliases) > 0 {
			d.aliases = aliases
		}
	}
}

// WithAllowed replaces the allowed modifier set.
func WithAllowed(names []string) Option {
	return func(d *Decoder) {
		if len(names) == 0 {
			return
		}
		d.allowed = make(map[string]bool, len(names))
		for _, n := range names {
			d.allowed[n] = true
		}
	}
}

// NewDecoder creates a Decoder with the fixed default tables.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		aliases: map[string]string{
			"RAN":   "RANDOM",
			"R-RAN": "R-RANDOM",
			"S-RAN": "S-RANDOM",
			"MIR":   "MIRROR",
		},
		allowed: map[string]bool{
			"RANDOM":   true,
			"R-RANDOM": true,
			"S-RANDOM": true,
			"MIRROR":   true,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses raw into Fields. The second return value lists side-modifier
// tokens that survived canonicalization but are not in the allowed set; they
// are sanitized to empty in the result and the caller decides how to report
// them. An empty or "off" raw string decodes to the all-empty state with no
// rejects.
func (d *Decoder) Decode(raw string) (Fields, []string) {
	norm := strings.ReplaceAll(raw, ".", ",")

	trimmed := strings.TrimSpace(norm)
	if trimmed == "" || strings.EqualFold(trimmed, offSentinel) {
		return Fields{}, nil
	}

	upper := strings.ToUpper(norm)
	f := Fields{
		Flip:        strings.Contains(upper, flagFlip),
		Legacy:      strings.Contains(upper, flagLegacy),
		AssistScore: strings.Contains(upper, flagAssistScore),
	}

	// Side modifiers come from the first segment only.
	segment := strings.SplitN(norm, ",", 2)[0]
	leftRaw, rightRaw := segment, ""
	if i := strings.Index(segment, "/"); i >= 0 {
		leftRaw, rightRaw = segment[:i], segment[i+1:]
	}

	var rejected []string
	f.Left, rejected = d.canonicalize(leftRaw, rejected)
	f.Right, rejected = d.canonicalize(rightRaw, rejected)
	return f, rejected
}

// canonicalize maps one side token through the abbreviation table and the
// allowed set. Empty tokens are legitimate absence, never a reject.
func (d *Decoder) canonicalize(tok string, rejected []string) (string, []string) {
	t := strings.ToUpper(strings.TrimSpace(tok))
	if t == "" {
		return "", rejected
	}
	if long, ok := d.aliases[t]; ok {
		t = long
	}
	if !d.allowed[t] {
		return "", append(rejected, strings.TrimSpace(tok))
	}
	return t, rejected
}
