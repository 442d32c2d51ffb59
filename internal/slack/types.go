package slack

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// ResponseTypeInChannel makes Slack show the reply to the whole channel.
const ResponseTypeInChannel = "in_channel"

// Attachment is a single rich-message attachment.
type Attachment struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

// AttachmentResponse is the body returned to Slack for a generated meme.
type AttachmentResponse struct {
	ResponseType string       `json:"response_type"`
	Attachments  []Attachment `json:"attachments"`
}

// NewAttachmentResponse posts imageURL in-channel, as both text and image.
func NewAttachmentResponse(imageURL string) AttachmentResponse {
	return AttachmentResponse{
		ResponseType: ResponseTypeInChannel,
		Attachments: []Attachment{
			{Text: imageURL, ImageURL: imageURL},
		},
	}
}

type errorInfo struct {
	Status string `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type errorResponse struct {
	Errors []errorInfo `json:"errors"`
}

func writeHeaders(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Header().Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
}

func renderSuccess(w http.ResponseWriter, resp AttachmentResponse) {
	writeHeaders(w, http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zap.S().Errorw("write response error", "error", err)
	}
}

// renderEmpty answers a declined generation: 200 and no body.
func renderEmpty(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
}

func renderError(w http.ResponseWriter, status int, err error) {
	writeHeaders(w, status)
	resp := errorResponse{Errors: []errorInfo{{Status: strconv.Itoa(status), Detail: err.Error()}}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zap.S().Errorw("write error response error", "error", err)
	}
}
