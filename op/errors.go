// errors

package op

import "errors"

var (
	ErrNilDB            = errors.New("nil db")
	ErrNilEngine        = errors.New("nil engine")
	ErrNilSelection     = errors.New("nil selection")
	ErrNilPlan          = errors.New("nil plan")
	ErrPlanMismatch     = errors.New("plan does not cover the selection")
	ErrNoPriorOperation = errors.New("no prior rewrite operation found")
	ErrTxFinished       = errors.New("transaction already executed")
)
