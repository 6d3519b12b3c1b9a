package mock

import (
	"github.com/sqladmin/sqladmin/core"
)

type resultStreamConfig struct {
	meta      *core.Meta
	header    core.Header
	failAfter int
	failErr   error
}

// ResultStreamOption configures the streams returned by the mock driver.
type ResultStreamOption func(*resultStreamConfig)

// ResultStreamWithNextError makes Next fail with err once n rows were returned.
func ResultStreamWithNextError(n int, err error) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.failAfter = n
		c.failErr = err
	}
}
