package service

import "time"

// SetNow overrides the transaction service clock in tests.
func (s *TransactionService) SetNow(now func() time.Time) {
	s.now = now
}
