package handler

import "github.com/voicedeck/recorder-api/internal/core/ports"

type renameRecordingRequest struct {
	OriginalName string `json:"original_name" validate:"required"`
}

type listRecordingsResponse struct {
	Recordings []*ports.RecordingView `json:"recordings"`
}
