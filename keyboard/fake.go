package keyboard

import "sync"

// FakeSource feeds scripted events to a listener.
type FakeSource struct {
	ch   chan Event
	once sync.Once
}

func NewFakeSource() *FakeSource {
	return &FakeSource{ch: make(chan Event, 64)}
}

func (f *FakeSource) Events() (<-chan Event, error) { return f.ch, nil }

func (f *FakeSource) Close() {
	f.once.Do(func() { close(f.ch) })
}

func (f *FakeSource) Press(key string)   { f.ch <- Event{Key: key, Press: true} }
func (f *FakeSource) Release(key string) { f.ch <- Event{Key: key, Press: false} }

func (f *FakeSource) Tap(key string) {
	f.Press(key)
	f.Release(key)
}
