package listmodel

import (
	"fmt"
	"strings"
)

// ViewMode selects which rows are shown when no search is active
type ViewMode int

const (
	ViewAll ViewMode = iota
	ViewUndeleted
	ViewDownloaded
	ViewUnplayed
)

// viewUnset is the podcast list mode before the first SetViewMode
const viewUnset ViewMode = -1

// ViewModes lists the selectable modes in display order
var ViewModes = []ViewMode{ViewAll, ViewUndeleted, ViewDownloaded, ViewUnplayed}

// String returns the string representation of ViewMode
func (m ViewMode) String() string {
	switch m {
	case ViewAll:
		return "all"
	case ViewUndeleted:
		return "undeleted"
	case ViewDownloaded:
		return "downloaded"
	case ViewUnplayed:
		return "unplayed"
	default:
		return "unset"
	}
}

// ParseViewMode converts a name produced by String back to a ViewMode
func ParseViewMode(s string) (ViewMode, error) {
	for _, m := range ViewModes {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ViewAll, fmt.Errorf("unknown view mode %q", s)
}

// rowFlags are the per-row eligibility flags shared by both row types
type rowFlags struct {
	ShowUndeleted  bool
	ShowDownloaded bool
	ShowUnplayed   bool
}

// visibleIn reports whether the flags admit a row in a non-ALL mode
func (f rowFlags) visibleIn(m ViewMode) bool {
	switch m {
	case ViewUndeleted:
		return f.ShowUndeleted
	case ViewDownloaded:
		return f.ShowDownloaded
	case ViewUnplayed:
		return f.ShowUnplayed
	}
	return true
}
