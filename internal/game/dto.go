package game

import "github.com/google/uuid"

type CreateJobRequest struct {
	Topic        string `json:"topic"`
	ForceRefresh bool   `json:"force_refresh"`
}

type CreateJobResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status Status    `json:"status"`
}

type JobStatusResponse struct {
	JobID    uuid.UUID `json:"job_id"`
	Status   Status    `json:"status"`
	Topic    string    `json:"topic"`
	GameHTML string    `json:"game_html,omitempty"`
	Error    string    `json:"error,omitempty"`
}

func newJobStatusResponse(j *GenerationJob) *JobStatusResponse {
	resp := &JobStatusResponse{JobID: j.ID, Status: j.Status, Topic: j.Topic}
	switch j.Status {
	case StatusCompleted:
		resp.GameHTML = j.Result
	case StatusFailed:
		resp.Error = j.ErrorMessage
	}
	return resp
}
