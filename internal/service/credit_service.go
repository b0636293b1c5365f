package service

import (
	"context"
	"log/slog"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/events"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/aigovern/admin-api/internal/task"
)

// CreditService records credit requests and routes them to approvers.
type CreditService interface {
	// RequestCredits records a credit request and notifies the approval
	// channel.
	RequestCredits(ctx context.Context, userID, userName, userEmail string, credits float64, reason string) (*domain.CreditRequest, error)
}

type creditServiceImpl struct {
	requestStore store.CreditRequestStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewCreditService creates a new CreditService.
// It returns an error if any of the required dependencies are nil.
func NewCreditService(
	requestStore store.CreditRequestStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (CreditService, error) {
	if requestStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "requestStore cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &creditServiceImpl{
		requestStore: requestStore,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "credit_service"),
	}, nil
}

// RequestCredits records a credit request. The request is persisted first;
// the approval notification is best-effort and never fails the operation.
func (s *creditServiceImpl) RequestCredits(
	ctx context.Context,
	userID, userName, userEmail string,
	credits float64,
	reason string,
) (*domain.CreditRequest, error) {
	req, err := domain.NewCreditRequest(userID, userName, userEmail, credits, reason)
	if err != nil {
		s.logger.Warn("invalid credit request",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	if err := s.requestStore.Create(ctx, req); err != nil {
		s.logger.Error("failed to save credit request",
			"error", err,
			"request_id", req.ID)
		return nil, &ServiceError{
			Operation: "request_credits",
			Message:   "failed to save credit request",
			Err:       err,
		}
	}

	s.logger.Info("credit request recorded",
		"request_id", req.ID,
		"user_id", userID,
		"requested_credits", credits)

	emitTaskEvent(ctx, s.eventEmitter, s.logger, task.KindApprovalRequested, map[string]any{
		"user_id":           req.UserID,
		"user_name":         req.UserName,
		"user_email":        req.UserEmail,
		"requested_credits": req.RequestedCredits,
		"reason":            req.Reason,
	})

	return req, nil
}
