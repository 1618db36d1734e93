package model

// TableState is a read-only snapshot of a rendered result table.
// Rows and Headers share index-aligned columns.
type TableState struct {
	Headers  []string
	Rows     [][]string
	Selected int // -1 if no row is selected
}

// SelectedRow returns the selected row, or nil when nothing valid is selected.
func (t TableState) SelectedRow() []string {
	if t.Selected < 0 || t.Selected >= len(t.Rows) {
		return nil
	}
	return t.Rows[t.Selected]
}

// QuickAction is a canned follow-up command offered after a result table.
type QuickAction struct {
	Key      string
	Label    string
	Template string
	NeedsRow bool
	Prompt   string
}
