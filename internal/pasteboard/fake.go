package pasteboard

import "sync"

// Fake is a scripted in-memory Pasteboard for tests. The classification
// algorithm is written once against the Pasteboard interface, so a Fake
// with canned type/data responses exercises the full priority order
// without a real pasteboard.
//
// The zero value behaves like an empty-but-reachable pasteboard (empty
// type list, count 0). Set Unreachable to mimic a dead pasteboard service.
// All methods are safe for concurrent use; mutate scripted state through
// Script so pollers reading from another goroutine observe it atomically.
type Fake struct {
	mu sync.Mutex

	Unreachable   bool
	DeclaredTypes []string
	Strings       map[string]string // type → string payload
	Data          map[string][]byte // type → raw bytes
	Paths         []string
	Count         int64
	App           *SourceApp
}

// Script runs fn while holding the fake's lock.
func (f *Fake) Script(fn func(*Fake)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// Bump simulates a clipboard mutation by advancing the change counter.
func (f *Fake) Bump() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Count++
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Unreachable {
		return nil
	}
	if f.DeclaredTypes == nil {
		return []string{}
	}
	return f.DeclaredTypes
}

func (f *Fake) StringForType(t string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.Strings[t]
	return s, ok
}

func (f *Fake) DataForType(t string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Data[t]
}

func (f *Fake) FileURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Paths
}

func (f *Fake) ChangeCount() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Unreachable {
		return 0
	}
	return f.Count
}

func (f *Fake) FrontmostApp() (SourceApp, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.App == nil {
		return SourceApp{}, false
	}
	return *f.App, true
}
