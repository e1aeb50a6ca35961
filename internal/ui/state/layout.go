package state

const (
	DefaultInputSize      = 60
	DefaultInfoSize       = 40
	DefaultActivitiesSize = 25

	resizeStep = 5
	// DynamicSlots is the number of panels sharing the dynamic regions.
	DynamicSlots = 3
)

// BlockSize holds the resizable panel percentages.
type BlockSize struct {
	Input      int
	Info       int
	Activities int
}

// DefaultBlockSize returns the initial layout.
func DefaultBlockSize() BlockSize {
	return BlockSize{Input: DefaultInputSize, Info: DefaultInfoSize, Activities: DefaultActivitiesSize}
}

// For returns the size controlled while panel is selected. The input and
// module table panels share the input width.
func (b *BlockSize) For(panel Panel) *int {
	switch panel {
	case PanelModuleInfo:
		return &b.Info
	case PanelActivities:
		return &b.Activities
	default:
		return &b.Input
	}
}

// Grow adds 5 to the panel size, clamped at 100.
func (b *BlockSize) Grow(panel Panel) int {
	size := b.For(panel)
	*size += resizeStep
	if *size > 100 {
		*size = 100
	}
	return *size
}

// Shrink removes 5 from the panel size, clamped at 0.
func (b *BlockSize) Shrink(panel Panel) int {
	size := b.For(panel)
	*size -= resizeStep
	if *size < 0 {
		*size = 0
	}
	return *size
}

// Slot returns which panel occupies the nth dynamic region given the
// rotation pointer.
func Slot(pointer, n int) Panel {
	switch (pointer + n) % DynamicSlots {
	case 0:
		return PanelModuleTable
	case 1:
		return PanelModuleInfo
	default:
		return PanelActivities
	}
}

// TableOffset returns the first module row drawn in a table of the given
// height so the selected index stays visible. Six rows are taken by the
// borders, the header and the title footer.
func TableOffset(index, height int) int {
	rows := TableRows(height)
	if rows <= 0 || index < rows {
		return 0
	}
	return index - rows + 1
}

// TableRows is the number of module rows that fit in a table of the given
// height.
func TableRows(height int) int {
	return height - 6
}
