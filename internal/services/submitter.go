package services

import (
	"context"
	"log"
	"time"

	"bacbo-live-client/internal/display"
	"bacbo-live-client/internal/models"
)

type RoundRecorder interface {
	RecordRound(rec *models.RoundRecord) error
}

type RecorderFunc func(rec *models.RoundRecord) error

func (f RecorderFunc) RecordRound(rec *models.RoundRecord) error {
	return f(rec)
}

// Submitter sends a round result to the analyzer and renders the reply.
// Calls are independent: overlapping submissions are not ordered and the
// panel ends up showing whichever reply was applied last.
type Submitter struct {
	client    *RoundClient
	panel     *display.Panel
	recorders []RoundRecorder
}

func NewSubmitter(client *RoundClient, panel *display.Panel, recorders ...RoundRecorder) *Submitter {
	return &Submitter{
		client:    client,
		panel:     panel,
		recorders: recorders,
	}
}

// Submit posts result, waits for the reply and writes it into the panel.
// Nothing is retried; on a failed request or an undecodable body the panel
// is left as it was.
func (s *Submitter) Submit(ctx context.Context, result models.Result) error {
	_, err := s.SubmitRecord(ctx, result)
	return err
}

func (s *Submitter) SubmitRecord(ctx context.Context, result models.Result) (*models.RoundRecord, error) {
	reply, err := s.client.PostRound(ctx, result)
	if err != nil {
		return nil, err
	}

	if err := s.panel.Apply(reply.Response); err != nil {
		return nil, err
	}

	rec := &models.RoundRecord{
		RequestID:  reply.RequestID,
		Result:     result,
		StatusCode: reply.StatusCode,
		Response:   reply.Response,
		Texts:      display.Texts(reply.Response),
		AppliedAt:  time.Now(),
	}

	for _, r := range s.recorders {
		if err := r.RecordRound(rec); err != nil {
			log.Printf("Failed to record round %s: %v", rec.RequestID, err)
		}
	}

	return rec, nil
}

// SubmitAsync starts Submit in its own goroutine. The channel receives
// exactly one value and is then closed.
func (s *Submitter) SubmitAsync(ctx context.Context, result models.Result) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.Submit(ctx, result)
	}()
	return done
}

func (s *Submitter) Panel() *display.Panel {
	return s.panel
}
