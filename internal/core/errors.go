package core

import "errors"

// Error categories. Model and parse failures degrade to a null extraction
// rather than surfacing to the caller; storage failures are logged and the
// in-session answer still returned; only session failures abort a request.
var (
	ErrModelInvocation = errors.New("model invocation failed")
	ErrParse           = errors.New("model output parse failed")
	ErrStorage         = errors.New("contact storage failed")
	ErrSession         = errors.New("session unavailable")
)
