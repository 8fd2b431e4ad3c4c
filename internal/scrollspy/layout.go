package scrollspy

// Bounds is a section's vertical span inside the container.
type Bounds struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Static is a Layout backed by fixed measurements, as reported by a client
// or built in tests.
type Static struct {
	Position float64           `json:"scroll_top"`
	Attached bool              `json:"attached"`
	Sections map[string]Bounds `json:"sections"`
}

// Stack builds an attached Static layout with the given sections laid out
// contiguously from offset 0. Sections without a height are omitted, as if
// not mounted yet.
func Stack(sections []string, heights ...float64) *Static {
	s := &Static{Attached: true, Sections: make(map[string]Bounds, len(sections))}
	top := 0.0
	for i, id := range sections {
		if i >= len(heights) {
			break
		}
		s.Sections[id] = Bounds{Top: top, Height: heights[i]}
		top += heights[i]
	}
	return s
}

// ScrollTop implements Layout.
func (s *Static) ScrollTop() (float64, bool) {
	return s.Position, s.Attached
}

// Bounds implements Layout.
func (s *Static) Bounds(id string) (float64, float64, bool) {
	b, ok := s.Sections[id]
	return b.Top, b.Height, ok
}
