package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"puzzle-landing-api/internal/models"

	"github.com/sirupsen/logrus"
)

// Prices in whole currency units
const (
	BasePriceSmall  = 38 // size "100"
	BasePriceLarge  = 60 // size "150"
	MulticolorPrice = 5
	CleanupPrice    = 15
	RushPrice       = 15
)

const (
	smallSize        = "100"
	dimensionUnknown = 0
)

// quoteService implements the QuoteService interface
type quoteService struct {
	logger *logrus.Logger
}

// NewQuoteService creates a new quote service instance
func NewQuoteService(logger *logrus.Logger) QuoteService {
	if logger == nil {
		logger = logrus.New()
	}
	return &quoteService{logger: logger}
}

// CalculateQuote validates the options and prices them. The first failing
// rule wins.
func (s *quoteService) CalculateQuote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	if req == nil {
		req = &models.QuoteRequest{}
	}

	size := models.Stringify(req.Size)
	pieces := models.NumberOr(req.Pieces, models.SupportedPieceCount)

	image := req.Image
	if image == nil {
		image = &models.ImageMeta{}
	}
	format := strings.ToLower(models.Stringify(models.ValueOr(image.Format, "")))
	width := models.NumberOr(image.Width, dimensionUnknown)
	height := models.NumberOr(image.Height, dimensionUnknown)

	addons := req.Addons
	if addons == nil {
		addons = &models.QuoteAddons{}
	}

	if !models.IsAllowedSize(size) {
		return nil, models.NewValidationError("size", "Invalid size. Must be 100 or 150.", req.Size)
	}
	if pieces != models.SupportedPieceCount {
		return nil, models.NewValidationError("pieces", "Invalid pieces. Only 100 pieces supported right now.", req.Pieces)
	}
	if format != "" && !models.IsAllowedImageFormat(format) {
		return nil, models.NewValidationError("image.format", "Invalid image format. Use JPG or PNG.", image.Format)
	}

	hasDimensions := models.IsUsableNumber(width) && models.IsUsableNumber(height)
	shortest := math.Min(width, height)
	if hasDimensions && shortest < models.MinQuotableSide {
		return nil, models.NewValidationError("image", "Image resolution too small to quote. Upload a higher-resolution image.", nil)
	}

	base := BasePriceLarge
	if size == smallSize {
		base = BasePriceSmall
	}

	breakdown := []models.LineItem{{
		Label:  fmt.Sprintf("Base (%s×%s, %d pcs)", size, size, models.SupportedPieceCount),
		Amount: base,
	}}
	if models.Truthy(addons.Multicolor) {
		breakdown = append(breakdown, models.LineItem{Label: "Multi-color", Amount: MulticolorPrice})
	}
	if models.Truthy(addons.Cleanup) {
		breakdown = append(breakdown, models.LineItem{Label: "Image cleanup", Amount: CleanupPrice})
	}
	if models.Truthy(addons.Rush) {
		breakdown = append(breakdown, models.LineItem{Label: "Rush", Amount: RushPrice})
	}

	total := 0
	for _, item := range breakdown {
		total += item.Amount
	}

	notes := []string{qualityNote(hasDimensions, width, height, shortest)}

	s.logger.WithFields(logrus.Fields{
		"size":  size,
		"total": total,
		"items": len(breakdown),
	}).Debug("Quote calculated")

	return &models.QuoteResponse{
		Total:     total,
		Breakdown: breakdown,
		Notes:     notes,
	}, nil
}

// qualityNote returns the single advisory note for the image resolution
func qualityNote(hasDimensions bool, width, height, shortest float64) string {
	if !hasDimensions {
		return "ℹ️ Image metadata not provided. Upload an image to get quality feedback."
	}

	dims := models.FormatDimension(width) + "×" + models.FormatDimension(height)
	switch {
	case shortest < models.MinPrintableSide:
		return fmt.Sprintf("⚠️ Low resolution (%s). Minimum is %dpx on shortest side.", dims, models.MinPrintableSide)
	case shortest < models.RecommendedSide:
		return fmt.Sprintf("👍 OK (%s). For best results, use %dpx+ shortest side.", dims, models.RecommendedSide)
	default:
		return fmt.Sprintf("✅ Great resolution (%s).", dims)
	}
}
