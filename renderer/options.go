package renderer

type Options struct {
	// Window title and size.
	Title  string
	Width  int
	Height int
}

// DefaultOptions returns the fixed window configuration: a 640x480 window titled "elvgl".
func DefaultOptions() Options {
	return Options{
		Title:  "elvgl",
		Width:  640,
		Height: 480,
	}
}
