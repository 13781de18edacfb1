package factory

import "fmt"

// An Option to modify the behaviour of the Factory.
type Option func(f *Factory) error

// WithNames sets the naming scheme.
func WithNames(names Names) Option {
	return func(f *Factory) error {
		f.names = names
		return nil
	}
}

// WithFlavor selects grammar extensions.
func WithFlavor(flavor Flavor) Option {
	return func(f *Factory) error {
		switch flavor {
		case Plain, Calculator:
			f.flavor = flavor
			return nil
		}
		return fmt.Errorf("unknown grammar flavor %d", int(flavor))
	}
}
