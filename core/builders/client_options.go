package builders

import "strings"

type clientConfig struct {
	typeProcessors map[string]func(any) any
	maxOpenConns   int
}

type ClientOption func(*clientConfig)

// WithCustomTypeProcessor converts values of the given database type name
// before they are put in a row.
func WithCustomTypeProcessor(typ string, fn func(any) any) ClientOption {
	return func(cc *clientConfig) {
		t := strings.ToLower(typ)
		_, ok := cc.typeProcessors[t]
		if ok {
			// processor already registered for this type
			return
		}

		cc.typeProcessors[t] = fn
	}
}
