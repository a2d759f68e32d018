package domain

import "errors"

// ErrUpstream covers any failed call to the platform API: transport errors
// and non-2xx answers alike. The gateway never retries; callers surface a
// generic failure and leave session state untouched.
var ErrUpstream = errors.New("upstream request failed")
