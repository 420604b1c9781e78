package bundle

import "errors"

var ErrMalformedBundle = errors.New("malformed bundle data")
