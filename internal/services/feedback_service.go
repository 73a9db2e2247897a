package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"puzzle-landing-api/internal/models"
	"puzzle-landing-api/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Feedback validation messages
const (
	MsgInvalidRating   = "Rating must be 1–5"
	MsgCommentRequired = "Comment is required"
	MsgCommentTooLong  = "Comment too long"
)

// feedbackService implements the FeedbackService interface
type feedbackService struct {
	repo      repositories.FeedbackRepository
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewFeedbackService creates a new feedback service instance
func NewFeedbackService(repo repositories.FeedbackRepository, logger *logrus.Logger) FeedbackService {
	if logger == nil {
		logger = logrus.New()
	}
	return &feedbackService{
		repo:      repo,
		validator: validator.New(),
		logger:    logger,
	}
}

// SubmitFeedback validates the submission, attaches caller metadata and
// stores one row
func (s *feedbackService) SubmitFeedback(ctx context.Context, req *models.FeedbackRequest, meta models.ClientMeta) error {
	if req == nil {
		req = &models.FeedbackRequest{}
	}

	rating := models.Number(req.Rating)
	if !isWholeNumber(rating) || rating < 1 || rating > 5 {
		return models.NewValidationError("rating", MsgInvalidRating, req.Rating)
	}

	record := &models.FeedbackRecord{
		PuzzleCode: models.NormalizePuzzleCode(req.Code),
		Rating:     int(rating),
		Comment:    strings.TrimSpace(req.Comment),
		Contact:    models.OptionalString(req.Contact),
		UserAgent:  nonEmpty(meta.UserAgent),
		IP:         nonEmpty(meta.IP),
	}

	if err := s.validator.Struct(record); err != nil {
		return feedbackValidationError(err)
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"operation": "submit_feedback",
			"rating":    record.Rating,
		}).Error("Feedback insert failed")
		return fmt.Errorf("%w: %v", ErrFeedbackNotSaved, err)
	}

	s.logger.WithFields(logrus.Fields{
		"rating":   record.Rating,
		"has_code": record.PuzzleCode != nil,
	}).Info("Feedback recorded")

	return nil
}

// feedbackValidationError maps the first failing field rule to the message
// shown on the page
func feedbackValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "Rating":
		return models.NewValidationError("rating", MsgInvalidRating, fe.Value())
	case "Comment":
		if fe.Tag() == "max" {
			return models.NewValidationError("comment", MsgCommentTooLong, nil)
		}
		return models.NewValidationError("comment", MsgCommentRequired, nil)
	}
	return models.NewValidationError(strings.ToLower(fe.Field()), fe.Error(), fe.Value())
}

func isWholeNumber(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
