package inject

// Fake records every character the per-char loop delivers. Characters
// listed in Fail simulate synthesis errors.
type Fake struct {
	Tapped  []string
	Fail    map[rune]error
	Injects int
}

func NewFake() *Fake {
	return &Fake{Fail: map[rune]error{}}
}

func (f *Fake) tapChar(c rune) error {
	if err := f.Fail[c]; err != nil {
		return err
	}
	f.Tapped = append(f.Tapped, string(c))
	return nil
}

func (f *Fake) Inject(text string) error {
	f.Injects++
	p := &perCharInjector{tapper: f}
	return p.Inject(text)
}
