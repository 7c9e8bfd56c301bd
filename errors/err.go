package errors

import (
	"fmt"
)

var (
	ErrInvalidConfig = fmt.Errorf("curio: invalid config")
	ErrNotFound      = fmt.Errorf("curio: not found")
	ErrInvalidParams = fmt.Errorf("curio: invalid params")
	ErrInternal      = fmt.Errorf("curio: internal error")

	// Decision-cycle failure kinds. A transport failure or a parse failure
	// aborts the cycle; an unknown action is reported and ignored.
	ErrTransport     = fmt.Errorf("curio: transport failure")
	ErrParse         = fmt.Errorf("curio: malformed model response")
	ErrUnknownAction = fmt.Errorf("curio: unknown action")
)
