package leave

import "errors"

var (
	ErrBalanceNotFound         = errors.New("Leave balance not found")
	ErrRequestNotFound         = errors.New("Leave request not found")
	ErrRequestAlreadyProcessed = errors.New("Leave request already processed")
	ErrInsufficientBalance     = errors.New("Insufficient leave balance")
)
