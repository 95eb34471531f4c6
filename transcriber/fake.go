package transcriber

import "context"

// InferCall records the arguments of one FakeModel.Infer invocation.
type InferCall struct {
	Samples    []float32
	SampleRate int
	Language   string
}

type FakeModel struct {
	Results []Result
	Err     error
	Calls   []InferCall
}

func NewFakeModel(text string) *FakeModel {
	var results []Result
	if text != "" {
		results = []Result{{Text: text}}
	}
	return &FakeModel{Results: results}
}

func (f *FakeModel) ModelName() string { return "fake" }

func (f *FakeModel) Close() error { return nil }

func (f *FakeModel) Infer(_ context.Context, samples []float32, sampleRate int, language string) ([]Result, error) {
	f.Calls = append(f.Calls, InferCall{
		Samples:    samples,
		SampleRate: sampleRate,
		Language:   language,
	})
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Results, nil
}
