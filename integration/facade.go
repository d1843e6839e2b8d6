// integration/facade.go

// Package integration is the single entry point the route layer calls: it
// composes the cache, the permission engine, the audit trail and the domain
// fetchers into one data-assembly pipeline. Assembly failures surface to the
// caller; audit and presentation failures never do.
package integration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talentedge/console-api/audit"
	"github.com/talentedge/console-api/cache"
	consoleerrors "github.com/talentedge/console-api/errors"
	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/model"
	"github.com/talentedge/console-api/util"
	"github.com/talentedge/console-api/validation"
)

// PermissionDeniedError carries the structured decision for a denied access.
type PermissionDeniedError struct {
	Decision model.PermissionDecision
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Decision.Reason)
}

func (e *PermissionDeniedError) Unwrap() error { return consoleerrors.ErrPermissionDenied }

// RateLimitedError carries the structured decision for a throttled access.
type RateLimitedError struct {
	Decision model.RateLimitDecision
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: retry after %s", e.Decision.RetryAfter)
}

func (e *RateLimitedError) Unwrap() error { return consoleerrors.ErrRateLimitExceeded }

// Layer is the data-integration facade. Constructed once at startup and
// injected into the route layer; it holds no package-level state.
type Layer struct {
	cache     *cache.Manager
	validator *validation.Engine
	auditor   *audit.Logger
	bus       *util.EventBus
	fetchers  Fetchers
	limits    validation.WithdrawalLimits
	bookings  validation.BookingIndex
}

func NewLayer(cacheManager *cache.Manager, validator *validation.Engine, auditor *audit.Logger, bus *util.EventBus, fetchers Fetchers, limits validation.WithdrawalLimits, bookings validation.BookingIndex) *Layer {
	return &Layer{
		cache:     cacheManager,
		validator: validator,
		auditor:   auditor,
		bus:       bus,
		fetchers:  fetchers,
		limits:    limits,
		bookings:  bookings,
	}
}

// GetSpecificData runs the full pipeline for one data type: validate,
// permission, rate limit, cache, fetch, cache write, audit.
func (l *Layer) GetSpecificData(ctx context.Context, userID, subjectID, dataType string) (interface{}, error) {
	if err := validateID(userID); err != nil {
		return nil, fmt.Errorf("%w: requester %q", consoleerrors.ErrInvalidRequesterID, userID)
	}
	if err := validateID(subjectID); err != nil {
		return nil, fmt.Errorf("%w: subject %q", consoleerrors.ErrInvalidCandidateID, subjectID)
	}
	if !knownDataType(dataType) {
		return nil, fmt.Errorf("%w: %q", consoleerrors.ErrUnknownDataType, dataType)
	}

	role := l.validator.Classify(ctx, userID)
	privileged := role == model.RoleAdmin || role == model.RoleSupport
	sensitive := validation.IsSensitive(dataType)

	decision := l.validator.CheckPermission(ctx, userID, subjectID, dataType)
	if !decision.Allowed {
		l.auditor.LogDataAccess(ctx, audit.AccessEntry{
			UserID:       userID,
			SubjectID:    subjectID,
			DataType:     dataType,
			Source:       audit.SourceError,
			Success:      false,
			ErrorMessage: decision.Reason,
			Sensitive:    sensitive,
			Privileged:   privileged,
		})
		return nil, &PermissionDeniedError{Decision: decision}
	}

	if limit := l.validator.CheckRateLimit(ctx, userID, dataType); !limit.Allowed {
		l.auditor.LogDataAccess(ctx, audit.AccessEntry{
			UserID:       userID,
			SubjectID:    subjectID,
			DataType:     dataType,
			Source:       audit.SourceError,
			Success:      false,
			ErrorMessage: limit.Reason,
			Sensitive:    sensitive,
			Privileged:   privileged,
		})
		return nil, &RateLimitedError{Decision: limit}
	}

	start := time.Now()
	key := cache.Key(subjectID, dataType)
	if value, ok := l.cache.Get(key); ok {
		l.auditor.LogDataAccess(ctx, audit.AccessEntry{
			UserID:       userID,
			SubjectID:    subjectID,
			DataType:     dataType,
			Source:       audit.SourceCacheHit,
			Success:      true,
			Sensitive:    sensitive,
			Privileged:   privileged,
			ResponseTime: time.Since(start),
		})
		return value, nil
	}

	value, err := l.fetch(ctx, subjectID, dataType)
	if err != nil {
		logger.Error("Domain fetch failed",
			zap.String("subjectID", subjectID),
			zap.String("dataType", dataType),
			zap.Error(err))
		l.auditor.LogDataAccess(ctx, audit.AccessEntry{
			UserID:       userID,
			SubjectID:    subjectID,
			DataType:     dataType,
			Source:       audit.SourceError,
			Success:      false,
			ErrorMessage: err.Error(),
			Sensitive:    sensitive,
			Privileged:   privileged,
			ResponseTime: time.Since(start),
		})
		return nil, fmt.Errorf("%w: %s for %s: %v", consoleerrors.ErrDataFetchFailed, dataType, subjectID, err)
	}

	l.cache.Set(key, value)
	l.auditor.LogDataAccess(ctx, audit.AccessEntry{
		UserID:       userID,
		SubjectID:    subjectID,
		DataType:     dataType,
		Source:       audit.SourceDatabaseFetch,
		Success:      true,
		Sensitive:    sensitive,
		Privileged:   privileged,
		ResponseTime: time.Since(start),
	})
	return value, nil
}

// GetUserData assembles the comprehensive profile: the five domain fetchers
// run concurrently, join, and the combined result is cached under the
// profile key.
func (l *Layer) GetUserData(ctx context.Context, userID, subjectID string) (*model.Profile, error) {
	if err := validateID(userID); err != nil {
		return nil, fmt.Errorf("%w: requester %q", consoleerrors.ErrInvalidRequesterID, userID)
	}
	if err := validateID(subjectID); err != nil {
		return nil, fmt.Errorf("%w: subject %q", consoleerrors.ErrInvalidCandidateID, subjectID)
	}

	role := l.validator.Classify(ctx, userID)
	privileged := role == model.RoleAdmin || role == model.RoleSupport

	decision := l.validator.CheckPermission(ctx, userID, subjectID, model.DataTypeProfile)
	if !decision.Allowed {
		l.auditor.LogDataAccess(ctx, audit.AccessEntry{
			UserID:       userID,
			SubjectID:    subjectID,
			DataType:     model.DataTypeProfile,
			Source:       audit.SourceError,
			Success:      false,
			ErrorMessage: decision.Reason,
			Sensitive:    true,
			Privileged:   privileged,
		})
		return nil, &PermissionDeniedError{Decision: decision}
	}

	start := time.Now()
	key := cache.Key(subjectID, model.DataTypeProfile)
	if value, ok := l.cache.Get(key); ok {
		if profile, ok := value.(*model.Profile); ok {
			l.auditor.LogDataAccess(ctx, audit.AccessEntry{
				UserID:       userID,
				SubjectID:    subjectID,
				DataType:     model.DataTypeProfile,
				Source:       audit.SourceCacheHit,
				Success:      true,
				Sensitive:    true,
				Privileged:   privileged,
				ResponseTime: time.Since(start),
			})
			return profile, nil
		}
	}

	profile := &model.Profile{CandidateID: subjectID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := l.fetchers.Payment.FetchPaymentData(gctx, subjectID)
		profile.Payment = data
		return err
	})
	g.Go(func() error {
		data, err := l.fetchers.Account.FetchAccountData(gctx, subjectID)
		profile.Account = data
		return err
	})
	g.Go(func() error {
		data, err := l.fetchers.Jobs.FetchJobsData(gctx, subjectID)
		profile.Jobs = data
		return err
	})
	g.Go(func() error {
		data, err := l.fetchers.Withdrawal.FetchWithdrawalData(gctx, subjectID)
		profile.Withdrawal = data
		return err
	})
	g.Go(func() error {
		data, err := l.fetchers.Interview.FetchInterviewData(gctx, subjectID)
		profile.Interview = data
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Profile assembly failed",
			zap.String("subjectID", subjectID),
			zap.Error(err))
		l.auditor.LogDataAccess(ctx, audit.AccessEntry{
			UserID:       userID,
			SubjectID:    subjectID,
			DataType:     model.DataTypeProfile,
			Source:       audit.SourceError,
			Success:      false,
			ErrorMessage: err.Error(),
			Sensitive:    true,
			Privileged:   privileged,
			ResponseTime: time.Since(start),
		})
		return nil, fmt.Errorf("%w: profile for %s: %v", consoleerrors.ErrDataFetchFailed, subjectID, err)
	}
	profile.AssembledAt = time.Now()

	l.cache.Set(key, profile)
	if l.bus != nil {
		l.bus.Publish(ctx, util.EventProfileAssembled, profile)
	}
	l.auditor.LogDataAccess(ctx, audit.AccessEntry{
		UserID:       userID,
		SubjectID:    subjectID,
		DataType:     model.DataTypeProfile,
		Source:       audit.SourceDatabaseFetch,
		Success:      true,
		Sensitive:    true,
		Privileged:   privileged,
		ResponseTime: time.Since(start),
	})
	return profile, nil
}

// InvalidateCache removes a subject's cached entries, optionally narrowed to
// one data type, and returns the number removed.
func (l *Layer) InvalidateCache(ctx context.Context, subjectID, dataType string) int {
	removed := l.cache.InvalidateSubject(subjectID, dataType)
	if removed > 0 && l.bus != nil {
		l.bus.Publish(ctx, util.EventCacheInvalidated, map[string]interface{}{
			"subject_id": subjectID,
			"data_type":  dataType,
			"removed":    removed,
		})
	}
	return removed
}

// HasPermission reports whether the access would be allowed, without
// touching the cache or the fetchers.
func (l *Layer) HasPermission(ctx context.Context, userID, subjectID, dataType string) bool {
	return l.validator.CheckPermission(ctx, userID, subjectID, dataType).Allowed
}

// AccessStatistics exposes the audit trail's aggregated view.
func (l *Layer) AccessStatistics(filter audit.StatisticsFilter) audit.Statistics {
	return l.auditor.AccessStatistics(filter)
}

// CacheStats exposes the cache's entry counts.
func (l *Layer) CacheStats() cache.Stats {
	return l.cache.Stats()
}

func (l *Layer) fetch(ctx context.Context, subjectID, dataType string) (interface{}, error) {
	switch dataType {
	case model.DataTypePayment:
		return l.fetchers.Payment.FetchPaymentData(ctx, subjectID)
	case model.DataTypeAccount:
		return l.fetchers.Account.FetchAccountData(ctx, subjectID)
	case model.DataTypeJobs:
		return l.fetchers.Jobs.FetchJobsData(ctx, subjectID)
	case model.DataTypeWithdrawal:
		return l.fetchers.Withdrawal.FetchWithdrawalData(ctx, subjectID)
	case model.DataTypeInterview:
		return l.fetchers.Interview.FetchInterviewData(ctx, subjectID)
	default:
		return nil, fmt.Errorf("%w: %q", consoleerrors.ErrUnknownDataType, dataType)
	}
}

// validateID rejects empty IDs and IDs containing the cache key delimiter.
func validateID(id string) error {
	if id == "" || strings.Contains(id, ":") {
		return consoleerrors.ErrInvalidCandidateID
	}
	return nil
}

func knownDataType(dataType string) bool {
	for _, t := range model.KnownDataTypes {
		if t == dataType {
			return true
		}
	}
	return false
}
