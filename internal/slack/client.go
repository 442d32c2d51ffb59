package slack

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/ffaiyaz23/memerelay/internal/memegen"
	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrBadRequest is returned when the command carries no text. Think of it as
// 'usage' for the endpoint.
var ErrBadRequest = errors.New("bad request: no text provided")

var tracer = otel.Tracer("memerelay")

// Generator creates meme instances. *memegen.Client implements it.
type Generator interface {
	Create(ctx context.Context, inst memegen.Instance) (memegen.Result, error)
}

// CommandHandler returns an HTTP handler that:
// 1) verifies Slack signatures when signingSecret is set,
// 2) parses the slash command form,
// 3) asks gen for a meme built from the command text,
// 4) and answers with an in-channel image attachment.
//
// A declined generation answers 200 with no body.
func CommandHandler(gen Generator, signingSecret, defaultImageID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "HandleSlashCommand",
			trace.WithAttributes(attribute.String("http.route", r.Pattern)),
		)
		defer span.End()
		logger := zap.S().With(
			"trace_id", span.SpanContext().TraceID().String(),
			"span_id", span.SpanContext().SpanID().String(),
		)

		// 1) read full body
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			renderError(w, http.StatusBadRequest, errors.New("read body error"))
			return
		}

		// 2) verify Slack signature
		if signingSecret != "" {
			if err := verify(r.Header, raw, signingSecret); err != nil {
				span.RecordError(err)
				logger.Warnw("rejected unsigned command", "error", err)
				renderError(w, http.StatusUnauthorized, errors.New("invalid signature"))
				return
			}
		}

		// 3) parse command
		r.Body = io.NopCloser(bytes.NewReader(raw))
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			renderError(w, http.StatusBadRequest, ErrBadRequest)
			return
		}
		if cmd.Text == "" {
			renderError(w, http.StatusBadRequest, ErrBadRequest)
			return
		}

		imageID := ParseImageID(r, defaultImageID)
		text0, text1 := ParseCaptions(cmd.Text)
		span.SetAttributes(
			attribute.String("slack.user_id", cmd.UserID),
			attribute.String("slack.channel_id", cmd.ChannelID),
			attribute.String("slack.command", cmd.Command),
			attribute.String("memegen.image_id", imageID),
		)

		// 4) generate
		res, err := gen.Create(ctx, memegen.Instance{ImageID: imageID, Text0: text0, Text1: text1})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			status := statusFor(err)
			logger.Errorw("meme generation failed",
				"image_id", imageID,
				"status", status,
				"error", err,
			)
			renderError(w, status, err)
			return
		}

		if res.Outcome != memegen.OutcomeGenerated {
			logger.Infow("no image produced", "image_id", imageID, "user", cmd.UserID)
			renderEmpty(w)
			return
		}

		logger.Infow("meme generated",
			"image_id", imageID,
			"user", cmd.UserID,
			"channel", cmd.ChannelID,
			"image_url", res.ImageURL,
		)
		renderSuccess(w, NewAttachmentResponse(res.ImageURL))
	}
}

// Routes mounts h on POST / and POST /{image_id}[/].
func Routes(h http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST /{$}", h)
	mux.Handle("POST /{image_id}", h)
	mux.Handle("POST /{image_id}/{$}", h)
	return mux
}

func verify(header http.Header, body []byte, signingSecret string) error {
	verifier, err := slack.NewSecretsVerifier(header, signingSecret)
	if err != nil {
		return err
	}
	if _, err := verifier.Write(body); err != nil {
		return err
	}
	return verifier.Ensure()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, memegen.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, memegen.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
