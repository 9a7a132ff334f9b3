package service

import (
	"context"
	"errors"
	"fmt"

	"nailpos/internal/dto"
	"nailpos/internal/history"
	"nailpos/internal/ledger"
)

// LedgerService exposes ledger browsing sessions: a live window of the most
// recent sales plus a history tail extended page by page.
type LedgerService interface {
	Open(ctx context.Context, tenantID string) (*dto.LedgerSessionResponse, error)
	Get(ctx context.Context, tenantID, id string) (*dto.LedgerSessionResponse, error)
	LoadMore(ctx context.Context, tenantID, id string) (*dto.LedgerSessionResponse, error)
	Close(ctx context.Context, tenantID, id string) error
	// Watch signals whenever the session view changes. stop must be called.
	Watch(ctx context.Context, tenantID, id string) (updates <-chan struct{}, stop func(), err error)
}

type ledgerService struct {
	sessions *ledger.Sessions
}

func NewLedgerService(sessions *ledger.Sessions) LedgerService {
	return &ledgerService{sessions: sessions}
}

func sessionErr(err error) error {
	if errors.Is(err, ledger.ErrSessionNotFound) {
		return fmt.Errorf("ledger session %w", ErrNotFound)
	}
	return err
}

func mapView(v ledger.View) *dto.LedgerSessionResponse {
	resp := &dto.LedgerSessionResponse{
		SessionID: v.SessionID,
		State:     v.State.String(),
		LiveCount: v.LiveCount,
		Data:      mapSales(v.Records),
	}
	if !v.Cursor.IsZero() {
		resp.Cursor = &dto.Cursor{Timestamp: v.Cursor.Timestamp, ID: v.Cursor.ID}
	}
	return resp
}

func (s *ledgerService) Open(ctx context.Context, tenantID string) (*dto.LedgerSessionResponse, error) {
	sess, err := s.sessions.Open(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return mapView(sess.View()), nil
}

func (s *ledgerService) Get(_ context.Context, tenantID, id string) (*dto.LedgerSessionResponse, error) {
	sess, err := s.sessions.Get(tenantID, id)
	if err != nil {
		return nil, sessionErr(err)
	}
	return mapView(sess.View()), nil
}

func (s *ledgerService) LoadMore(ctx context.Context, tenantID, id string) (*dto.LedgerSessionResponse, error) {
	sess, n, err := s.sessions.LoadMore(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, history.ErrNoSnapshot) {
			return nil, invalid("session", "live window not loaded yet")
		}
		return nil, sessionErr(err)
	}
	resp := mapView(sess.View())
	resp.Loaded = n
	return resp, nil
}

func (s *ledgerService) Close(_ context.Context, tenantID, id string) error {
	return sessionErr(s.sessions.Close(tenantID, id))
}

func (s *ledgerService) Watch(_ context.Context, tenantID, id string) (<-chan struct{}, func(), error) {
	sess, err := s.sessions.Get(tenantID, id)
	if err != nil {
		return nil, nil, sessionErr(err)
	}
	ch, stop := sess.Updates()
	return ch, stop, nil
}
