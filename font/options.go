package font

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	find func(name string) (string, error)
}

// WithSystemFontFinder replaces the system font lookup used when a font path
// does not exist. find returns the path of the font file for a base name.
func WithSystemFontFinder(find func(name string) (string, error)) LoaderOption {
	return func(o *loaderOptions) {
		o.find = find
	}
}
