package bridge

// HostLayout describes where one known host build keeps the structures
// the bridge needs. Offsets are relative to the input manager singleton
// returned by ManagerSym. Blind pointer arithmetic against an unknown
// build is never attempted; an unrecognized build id resolves to
// ErrUnsupportedVersion instead.
type HostLayout struct {
	// Exported symbol returning the process-wide input manager.
	ManagerSym string
	// Offset of the view/context pointer slot inside the manager.
	ViewOffset uintptr
	// Offsets of the press/release handler function-pointer slots.
	PressSlot   uintptr
	ReleaseSlot uintptr
	// Magic word expected at MagicOffset inside the manager; checked
	// before any offset is trusted.
	Magic       uint32
	MagicOffset uintptr
}

// layouts maps host build ids to their structural layout. New host
// builds get a new entry here after the offsets are verified against
// the shipped binary.
var layouts = map[string]HostLayout{
	"2024.1": {
		ManagerSym:  "gi_input_manager",
		ViewOffset:  0x18,
		PressSlot:   0x40,
		ReleaseSlot: 0x48,
		Magic:       0x494E504D, // "INPM"
		MagicOffset: 0x00,
	},
	"2024.2": {
		ManagerSym:  "gi_input_manager",
		ViewOffset:  0x20,
		PressSlot:   0x48,
		ReleaseSlot: 0x50,
		Magic:       0x494E504D,
		MagicOffset: 0x00,
	},
}

// LookupLayout returns the layout for a host build id.
func LookupLayout(buildID string) (HostLayout, error) {
	l, ok := layouts[buildID]
	if !ok {
		return HostLayout{}, ErrUnsupportedVersion
	}
	return l, nil
}

// SupportedBuilds lists the build ids the offset table covers.
func SupportedBuilds() []string {
	ids := make([]string, 0, len(layouts))
	for id := range layouts {
		ids = append(ids, id)
	}
	return ids
}
