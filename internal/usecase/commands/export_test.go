//go:build unit

package commands

import reqdto "ticketgo/internal/handler/dto/request"

// RequestHash exposes the idempotency payload hash to tests.
func RequestHash(req reqdto.CreateBookingRequest) string {
	return calculateRequestHash(req)
}
