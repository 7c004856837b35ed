package differ

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithContext sets how many unchanged lines surround each change.
func WithContext(lines int) Option {
	return func(d *differ) {
		if lines >= 0 {
			d.context = lines
		}
	}
}
