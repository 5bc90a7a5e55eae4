package rangefind

// DefaultObjectWidth is the assumed real-world width in meters for labels
// not present in the table. Roughly a shoebox; wrong for many objects, but
// the fallback only needs to be in the right order of magnitude.
const DefaultObjectWidth = 0.3

// WidthTable maps detection labels to assumed real-world widths in meters.
type WidthTable struct {
	ByLabel map[string]float64
	Default float64
}

// DefaultWidths returns assumed widths for common object classes.
// Values are eyeballed averages; accuracy is approximately ±30% which is
// acceptable for a fallback estimate.
func DefaultWidths() WidthTable {
	return WidthTable{
		ByLabel: map[string]float64{
			"person":     0.5,
			"bicycle":    0.6,
			"car":        1.8,
			"motorcycle": 0.8,
			"bus":        2.5,
			"truck":      2.5,
			"chair":      0.5,
			"couch":      1.8,
			"tv":         1.0,
			"laptop":     0.33,
			"cell phone": 0.08,
			"bottle":     0.08,
			"cup":        0.09,
			"book":       0.15,
			"dog":        0.4,
			"cat":        0.25,
		},
		Default: DefaultObjectWidth,
	}
}

// Width returns the assumed width for a label, falling back to the default
// for unknown labels.
func (t WidthTable) Width(label string) float64 {
	if w, ok := t.ByLabel[label]; ok {
		return w
	}
	if t.Default > 0 {
		return t.Default
	}
	return DefaultObjectWidth
}
