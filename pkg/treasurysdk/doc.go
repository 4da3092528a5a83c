/*
Package treasurysdk is a Go client for the chapter treasury service.

A Client covers the unauthenticated endpoints (health, JWKS, registration,
login and bootstrap) and opens Sessions:

	client := treasurysdk.NewClient("http://localhost:8080")
	session, err := client.AuthenticateWithPassword(ctx, "treasurer@example.edu", password)

A Session carries the access token and exposes the ledger operations:

	n, err := session.CreateChargeBatch(ctx, treasurysdk.ChargeBatchRequest{AmountCents: 50000})
	bal, err := session.DuesBalance(ctx, userID)

Non-2xx responses are returned as *APIError. IsAccessDenied, IsNotFound and
IsConflict classify them. Idempotent operations (grant, revoke, delete,
rollover) report whether anything changed rather than failing on repeats.
*/
package treasurysdk
