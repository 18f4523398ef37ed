package textmesh

// warningThreshold is the number of skipped attempts tolerated before the
// missing font warning is logged.
const warningThreshold = 5

// missingFontMessage is logged once per object whose font never resolves.
const missingFontMessage = `font mesh not found - did you load the font using the #mesh label (loader.Load("font.ttf#mesh"))?`

// FontStatus is what the watcher last learned about an object's font.
type FontStatus uint8

const (
	// FontUnknown means no font event was seen for the object's font.
	FontUnknown FontStatus = iota

	// FontLoaded means the font was added to the font store.
	FontLoaded

	// FontUnloaded means the font was removed from the font store.
	FontUnloaded
)

// String returns the status name.
func (s FontStatus) String() string {
	switch s {
	case FontUnknown:
		return "Unknown"
	case FontLoaded:
		return "Loaded"
	case FontUnloaded:
		return "Unloaded"
	default:
		return "Invalid"
	}
}

// ReadinessState is the per-object record shared by the watcher and the
// synchronizer. It lives and dies with its object and is never reset.
type ReadinessState struct {
	FontLoaded FontStatus

	// WarningTriggerCount counts attempts skipped for lack of a font.
	WarningTriggerCount int

	// WarningShown latches once the missing font warning was logged.
	WarningShown bool
}

// recordMissingFont counts a skipped attempt and reports whether the
// warning is due now.
func (st *ReadinessState) recordMissingFont() bool {
	st.WarningTriggerCount++
	if st.WarningTriggerCount > warningThreshold && !st.WarningShown {
		st.WarningShown = true
		return true
	}
	return false
}
