package pdfreader

// MockExtractor returns canned fragments (or a canned error) so pipeline and
// handler tests run without real PDF bytes.
type MockExtractor struct {
	Fragments []Fragment
	Err       error
	Calls     int
}

// Extract implements Extractor.
func (m *MockExtractor) Extract(_ []byte) ([]Fragment, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Fragments, nil
}
