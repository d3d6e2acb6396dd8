package repository

import "errors"

// ErrProposalNotPending предложение уже одобрено, отклонено или истекло
var ErrProposalNotPending = errors.New("proposal is not pending")
