package cache

// Keyer builds cache keys. Implementations must return identical keys for
// identical inputs across processes.
type Keyer interface {
	// LayoutKey identifies the layout of a scene under the given options.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes a layout result.
type LayoutKeyOpts struct {
	Width, Height int
	Randomize     bool
	Seed          uint64
	Style         string
	Align         string
	Gap           string
	MinHGap       int
	MaxHGap       int
	MinVGap       int
	Padding       int
	MaxTries      int
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string
	Labels  bool
	Padding bool
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + opts.Format + hashKey("", layoutHash, opts)
}
