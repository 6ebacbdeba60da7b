package meeting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// CreateInput carries the fields needed to schedule a meeting.
type CreateInput struct {
	Title       string
	Date        time.Time
	Description string
	StartTime   string // "HH:MM"
	EndTime     string // "HH:MM"
	Location    string
	CreatedBy   string
}

func (in CreateInput) validate() error {
	var fields []domain.FieldError
	if in.Title == "" {
		fields = append(fields, domain.FieldError{Field: "title", Message: "is required"})
	}
	if in.Date.IsZero() {
		fields = append(fields, domain.FieldError{Field: "meeting_date", Message: "is required"})
	}
	if in.StartTime == "" {
		fields = append(fields, domain.FieldError{Field: "start_time", Message: "is required"})
	}
	if in.EndTime == "" {
		fields = append(fields, domain.FieldError{Field: "end_time", Message: "is required"})
	}
	if in.Location == "" {
		fields = append(fields, domain.FieldError{Field: "location", Message: "is required"})
	}
	if in.CreatedBy == "" {
		fields = append(fields, domain.FieldError{Field: "created_by", Message: "is required"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// Create schedules a meeting. The total duration is derived from the start
// and end times; the minutes-left counter starts equal to it and nothing is
// taken yet. New meetings always begin in Curation.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Meeting, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	total, err := domain.MeetingDuration(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	m := &domain.Meeting{
		Title:         in.Title,
		Date:          in.Date,
		Description:   in.Description,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		TotalDuration: total,
		MinutesLeft:   total,
		MinutesTaken:  0,
		Location:      in.Location,
		CreatedBy:     in.CreatedBy,
		Status:        domain.MeetingStatusCuration,
	}

	created, err := s.meetings.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}

	s.log.InfoContext(ctx, "meeting created",
		slog.String("meeting_id", created.ID.String()),
		slog.String("title", created.Title),
		slog.Int("total_duration", created.TotalDuration),
	)

	return created, nil
}
