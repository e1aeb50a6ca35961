package state

// Option is one entry of the options overlay.
type Option struct {
	ID    string
	Label string
}

// DefaultOptions lists the overlay entries in display order.
func DefaultOptions() []Option {
	return []Option{
		{ID: "load", Label: "Load a kernel module"},
		{ID: "unload", Label: "Unload the module"},
		{ID: "reload", Label: "Reload the module"},
		{ID: "blacklist", Label: "Blacklist the module"},
		{ID: "dependent", Label: "Show the dependent modules"},
		{ID: "copy", Label: "Copy the module name"},
		{ID: "clear", Label: "Clear the ring buffer"},
	}
}

// Options is a wrapping cursor over the overlay entries.
type Options struct {
	Items []Option
	Index int
}

// NewOptions builds the overlay with the first entry highlighted.
func NewOptions(items []Option) *Options {
	return &Options{Items: items}
}

// Next highlights the following entry, wrapping to the first.
func (o *Options) Next() {
	if len(o.Items) == 0 {
		o.Index = 0
		return
	}
	if o.Index >= len(o.Items)-1 {
		o.Index = 0
	} else {
		o.Index++
	}
}

// Previous highlights the preceding entry, wrapping to the last.
func (o *Options) Previous() {
	if len(o.Items) == 0 {
		o.Index = 0
		return
	}
	if o.Index <= 0 {
		o.Index = len(o.Items) - 1
	} else {
		o.Index--
	}
}

// Reset highlights the first entry.
func (o *Options) Reset() {
	o.Index = 0
}

// Selected returns the highlighted entry.
func (o *Options) Selected() (Option, bool) {
	if o.Index < 0 || o.Index >= len(o.Items) {
		return Option{}, false
	}
	return o.Items[o.Index], true
}
