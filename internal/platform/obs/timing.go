package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time logs the duration of an operation, tagged with the request ID
// carried in ctx when there is one. Use with a named error return:
//
//	defer obs.Time(ctx, "fetch directions")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start).Milliseconds()
		if errp != nil && *errp != nil {
			log.Printf("op=%q req_id=%s dur=%dms err=%v", name, reqID, dur, *errp)
			return
		}
		log.Printf("op=%q req_id=%s dur=%dms", name, reqID, dur)
	}
}
