package http

import "context"

type contextKey string

const partnerIDKey contextKey = "partner_id"

// PartnerIDFromContext returns the authenticated registrant's partner id.
// The second return is false when the request never passed auth middleware.
func PartnerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(partnerIDKey).(int64)
	return id, ok
}

func withPartnerID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, partnerIDKey, id)
}
