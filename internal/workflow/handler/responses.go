package handler

import (
	"time"

	"simbahan/internal/audit"
	"simbahan/internal/workflow"
)

// RecordResponse is the wire form of a transition record.
type RecordResponse struct {
	ID             string    `json:"id"`
	ChurchID       string    `json:"church_id"`
	FromStatus     string    `json:"from_status,omitempty"`
	ToStatus       string    `json:"to_status"`
	ActorID        string    `json:"actor_id"`
	ActorRole      string    `json:"actor_role"`
	Score          int       `json:"score"`
	Confidence     string    `json:"confidence"`
	Notes          string    `json:"notes,omitempty"`
	ClientPlatform string    `json:"client_platform,omitempty"`
	Outcome        string    `json:"outcome"`
	ErrorCode      string    `json:"error_code,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// TransitionResponse reports one evaluated transition attempt.
type TransitionResponse struct {
	Outcome   string          `json:"outcome"`
	ErrorCode string          `json:"error_code,omitempty"`
	Record    *RecordResponse `json:"record,omitempty"`
	Version   int64           `json:"version,omitempty"`
	Status    string          `json:"status,omitempty"`
}

// TrailResponse wraps a church's ledger.
type TrailResponse struct {
	Records []RecordResponse `json:"records"`
}

func fromRecord(rec *audit.TransitionRecord) *RecordResponse {
	if rec == nil {
		return nil
	}
	return &RecordResponse{
		ID:             rec.ID.String(),
		ChurchID:       rec.ChurchID.String(),
		FromStatus:     rec.FromStatus.String(),
		ToStatus:       rec.ToStatus.String(),
		ActorID:        rec.ActorID.String(),
		ActorRole:      rec.ActorRole.String(),
		Score:          rec.Score.Score,
		Confidence:     string(rec.Score.Confidence),
		Notes:          rec.Notes,
		ClientPlatform: rec.ClientPlatform,
		Outcome:        string(rec.Outcome),
		ErrorCode:      rec.ErrorCode,
		Timestamp:      rec.Timestamp,
	}
}

// FromResult converts an engine result to the HTTP response.
func FromResult(res *workflow.Result) TransitionResponse {
	out := TransitionResponse{
		Outcome:   string(res.Outcome),
		ErrorCode: string(res.ErrorCode),
		Record:    fromRecord(res.Record),
	}
	if res.Church != nil {
		out.Version = res.Church.Version
		out.Status = res.Church.Status.String()
	}
	return out
}

// FromRecords converts a ledger listing.
func FromRecords(records []audit.TransitionRecord) TrailResponse {
	out := TrailResponse{Records: make([]RecordResponse, 0, len(records))}
	for i := range records {
		out.Records = append(out.Records, *fromRecord(&records[i]))
	}
	return out
}
