package coach

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLoggingInterceptor logs every unary call with its outcome.
func NewLoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			res, err := next(ctx, req)

			var (
				ev   *zerolog.Event
				cerr *connect.Error
			)
			switch {
			case err == nil:
				ev = log.Debug()
			case errors.As(err, &cerr) && cerr.Code() == connect.CodeInternal:
				ev = log.Error().Err(err)
			default:
				ev = log.Info().Err(err)
			}
			ev.Str("procedure", req.Spec().Procedure).
				Str("peer", req.Peer().Addr).
				Dur("duration", time.Since(start)).
				Msg("rpc")
			return res, err
		}
	}
}
