package bubbletea

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// BlockFocus returns the index of the focused collapsible block.
func BlockFocus(m Model) int {
	return m.blockFocus
}

// SetRunning puts the model in a running state with the given cancel function.
func SetRunning(m Model, cancel func()) Model {
	m.running = true
	m.cancel = cancel
	return m
}
