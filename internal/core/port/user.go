package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// UserPort exposes the user store to the metrics refresher; token issuance
// lives outside this service.
type UserPort interface {
	Count(ctx context.Context) (int64, error)
}
