//go:build !darwin || !cgo

package pasteboard

// unsupported is the stub for platforms without the pasteboard facility
// (and darwin builds without cgo). Absence of the system is represented by
// sentinel values only: the snapshot reader sees a nil type list and always
// returns nil, and the change counter is a constant 0. Downstream pollers
// must treat "always nil / always 0" as a valid steady state.
type unsupported struct{}

// New returns the unsupported pasteboard stub.
func New() Pasteboard { return unsupported{} }

func (unsupported) Name() string                        { return "unsupported" }
func (unsupported) Types() []string                     { return nil }
func (unsupported) StringForType(string) (string, bool) { return "", false }
func (unsupported) DataForType(string) []byte           { return nil }
func (unsupported) FileURLs() []string                  { return nil }
func (unsupported) ChangeCount() int64                  { return 0 }
func (unsupported) FrontmostApp() (SourceApp, bool)     { return SourceApp{}, false }
