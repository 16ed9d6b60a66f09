package domain

import "errors"

// ErrUpstream marks failures of external collaborators (store, payment
// provider). The routing layer surfaces it as a server error; retries, if
// any, belong to the caller.
var ErrUpstream = errors.New("upstream dependency failed")
