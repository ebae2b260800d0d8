package mocks

import "context"

// StubRasterizer swaps the headless browser for a recorder so the rest
// of the pipeline can run in-process.
type StubRasterizer struct {
	LastHTML string
	Output   []byte
	Err      error
}

func (r *StubRasterizer) Render(ctx context.Context, html string) ([]byte, error) {
	r.LastHTML = html
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Output != nil {
		return r.Output, nil
	}
	return []byte("%PDF-1.4 stub"), nil
}
