package resume

import (
	"context"
	"errors"
	"io"
	"strings"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

// Upload is an optional image sent alongside a submission.
type Upload struct {
	FileName string
	Body     io.Reader
}

// Service orchestrates the store gateway, the asset store and the pure
// record operations.
type Service struct {
	Repo   Repo
	Assets AssetStore
}

func NewService(repo Repo, assets AssetStore) *Service {
	return &Service{Repo: repo, Assets: assets}
}

type mergeFunc func(Record, Submission, string) (Record, string, error)

// Get returns the user's record, empty if nothing was saved yet.
func (s *Service) Get(ctx context.Context, userID string) (Record, error) {
	if err := s.ready(); err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return Record{}, ErrNotFound
	}
	return s.Repo.Get(ctx, userID)
}

// Save merges a draft submission into the stored record.
func (s *Service) Save(ctx context.Context, userID string, in Submission, image *Upload) (Record, error) {
	rec, err := s.apply(ctx, userID, in, image, Merge)
	if err == nil {
		metrics.ResumeSaved.Inc()
	}
	return rec, err
}

// Submit merges a submission and marks the record as submitted.
func (s *Service) Submit(ctx context.Context, userID string, in Submission, image *Upload) (Record, error) {
	rec, err := s.apply(ctx, userID, in, image, Submit)
	if err == nil {
		metrics.ResumeSubmitted.Inc()
	}
	return rec, err
}

func (s *Service) apply(ctx context.Context, userID string, in Submission, image *Upload, merge mergeFunc) (Record, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Record{}, err
	}

	var newImage string
	if image != nil {
		if s.Assets == nil {
			return Record{}, errors.New("asset store not configured")
		}
		newImage, err = s.Assets.Save(ctx, userID, image.FileName, image.Body)
		if err != nil {
			return Record{}, err
		}
	}

	next, stale, err := merge(current, in, newImage)
	if err != nil {
		metrics.ResumeMergeFailed.Inc()
		s.discard(ctx, userID, newImage, "merge_failed")
		return Record{}, err
	}
	if err := s.Repo.Put(ctx, userID, next.Content); err != nil {
		s.discard(ctx, userID, newImage, "put_failed")
		return Record{}, err
	}
	s.discard(ctx, userID, stale, "replaced")
	return next, nil
}

// AddEducation appends one education entry.
func (s *Service) AddEducation(ctx context.Context, userID string, e Education) (Record, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	next, err := AddEducation(current, e)
	if err != nil {
		return Record{}, err
	}
	if err := s.Repo.Put(ctx, userID, next.Content); err != nil {
		return Record{}, err
	}
	return next, nil
}

// DeleteEntry removes one experience or education entry by position.
func (s *Service) DeleteEntry(ctx context.Context, userID string, c Collection, index int) (Record, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	next, err := DeleteEntry(current, c, index)
	if err != nil {
		return Record{}, err
	}
	if err := s.Repo.Put(ctx, userID, next.Content); err != nil {
		return Record{}, err
	}
	return next, nil
}

// Reset clears all resume content and removes the stored image.
func (s *Service) Reset(ctx context.Context, userID string) (Record, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	next, stale := Reset(current)
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return Record{}, err
	}
	metrics.ResumeReset.Inc()
	s.discard(ctx, userID, stale, "reset")
	return next, nil
}

// OpenAsset streams a stored image by its record path.
func (s *Service) OpenAsset(ctx context.Context, path string) (io.ReadCloser, error) {
	if s == nil || s.Assets == nil {
		return nil, ErrNotFound
	}
	return s.Assets.Open(ctx, path)
}

// discard deletes an asset best-effort. Failures are logged and counted but
// never fail the request.
func (s *Service) discard(ctx context.Context, userID, path, reason string) {
	if path == "" || s.Assets == nil {
		return
	}
	if err := s.Assets.Delete(context.WithoutCancel(ctx), path); err != nil {
		metrics.AssetCleanupFailed.Inc()
		telemetry.Warn("resume.asset_cleanup_failed", map[string]any{
			"user_id": userID,
			"path":    path,
			"reason":  reason,
			"error":   err,
		})
	}
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("resume service not configured")
	}
	return nil
}
