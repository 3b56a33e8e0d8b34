package usecase

import (
	"context"

	"dw/internal/modules/tracker/dto"
	trackerin "dw/internal/modules/tracker/port/in"
	trackerout "dw/internal/modules/tracker/port/out"
	"dw/internal/modules/tracker/service"
	apperrors "dw/internal/platform/errors"
	"dw/internal/platform/lockfile"
)

// Interactor guards every load-mutate-save cycle with the store lock.
// Separate invocations of the tool share one state file; holding the lock
// across the whole cycle keeps two concurrent starts from both observing
// an idle state and silently discarding each other's marker.
type Interactor struct {
	svc     *service.TrackerService
	store   trackerout.StateStore
	journal trackerout.JournalStore
	lock    lockfile.Manager
}

func NewInteractor(svc *service.TrackerService, store trackerout.StateStore, journal trackerout.JournalStore, lock lockfile.Manager) trackerin.Usecase {
	return &Interactor{svc: svc, store: store, journal: journal, lock: lock}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	out := dto.StartOutput{}
	err := i.lock.Within(ctx, func(ctx context.Context) error {
		state, err := i.store.Load(ctx)
		if err != nil {
			return err
		}
		state, marker, err := i.svc.Start(state, input.Label)
		if err != nil {
			return err
		}
		if err := i.store.Save(ctx, state); err != nil {
			return err
		}
		out = dto.StartOutput{SessionID: marker.SessionID, StartedAt: marker.StartedAt, Label: marker.Label}
		return nil
	})
	return out, err
}

func (i *Interactor) Stop(ctx context.Context) (dto.StopOutput, error) {
	out := dto.StopOutput{}
	err := i.lock.Within(ctx, func(ctx context.Context) error {
		state, err := i.store.Load(ctx)
		if err != nil {
			return err
		}
		state, session, err := i.svc.Stop(state)
		if err != nil {
			return err
		}
		if err := i.store.Save(ctx, state); err != nil {
			return err
		}
		out = dto.StopOutput{
			SessionID: session.ID,
			StartedAt: session.StartedAt,
			EndedAt:   session.EndedAt,
			Duration:  session.Duration(),
			Label:     session.Label,
		}
		// The session is already saved; a failed note must not turn the
		// stop into an error.
		if i.journal != nil {
			notePath, noteErr := i.journal.Write(ctx, session)
			if noteErr != nil {
				out.NoteWarning = noteErr.Error()
			} else {
				out.NotePath = notePath
			}
		}
		return nil
	})
	return out, err
}

func (i *Interactor) Abort(ctx context.Context) (dto.ActiveOutput, error) {
	out := dto.ActiveOutput{}
	err := i.lock.Within(ctx, func(ctx context.Context) error {
		state, err := i.store.Load(ctx)
		if err != nil {
			return err
		}
		state, marker, err := i.svc.Abort(state)
		if err != nil {
			return err
		}
		if err := i.store.Save(ctx, state); err != nil {
			return err
		}
		out = dto.ActiveOutput{SessionID: marker.SessionID, StartedAt: marker.StartedAt, Label: marker.Label}
		return nil
	})
	return out, err
}

func (i *Interactor) Status(ctx context.Context) (dto.ActiveOutput, error) {
	out := dto.ActiveOutput{}
	err := i.lock.Within(ctx, func(ctx context.Context) error {
		state, err := i.store.Load(ctx)
		if err != nil {
			return err
		}
		if state.Active == nil {
			return apperrors.ErrNoActiveSession
		}
		out = dto.ActiveOutput{SessionID: state.Active.SessionID, StartedAt: state.Active.StartedAt, Label: state.Active.Label}
		return nil
	})
	return out, err
}

func (i *Interactor) History(ctx context.Context) ([]dto.SessionOutput, error) {
	var out []dto.SessionOutput
	err := i.lock.Within(ctx, func(ctx context.Context) error {
		state, err := i.store.Load(ctx)
		if err != nil {
			return err
		}
		out = make([]dto.SessionOutput, 0, len(state.History))
		for _, s := range state.History {
			out = append(out, dto.SessionOutput{
				ID:        s.ID,
				StartedAt: s.StartedAt,
				EndedAt:   s.EndedAt,
				Duration:  s.Duration(),
				Label:     s.Label,
			})
		}
		return nil
	})
	return out, err
}
