package rod

// Manager exposes manager to tests.
func (f *Fetcher) Manager(headless bool) (*BrowserManager, error) {
	return f.manager(headless)
}
