package content

import "errors"

// ErrContentUnavailable reports missing or malformed level material. The
// session surfaces it as a retryable error and does not advance the level.
var ErrContentUnavailable = errors.New("level content unavailable")
