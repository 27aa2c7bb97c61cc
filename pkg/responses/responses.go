package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
)

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error Error `json:"error"`
}

func WriteSuccess(w io.Writer, data any) error {
	return writeJSON(w, SuccessEnvelope{Data: data})
}

// WriteError writes the public form of err and returns the process exit code
// for it. Untyped errors are reported as internal errors.
func WriteError(ctx context.Context, logg *logger.Logger, w io.Writer, err error) int {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if typed.Code() != pkgerrors.CodeInternal {
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := ErrorEnvelope{
		Error: Error{
			Code:    string(typed.Code()),
			Message: msg,
		},
	}
	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code": string(typed.Code()),
			"retryable":  meta.Retryable,
		})
		logg.Error(ctx, "quote.error", err)
	}

	if werr := writeJSON(w, payload); werr != nil && logg != nil {
		logg.Error(ctx, "failed to encode error response", werr)
	}
	return meta.ExitCode
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
