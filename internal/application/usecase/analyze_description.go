package usecase

import (
	"context"
	"errors"

	"github.com/consolevik/TerraLend/internal/application/dto"
	"github.com/consolevik/TerraLend/internal/domain/service"
)

// AnalyzeDescriptionUseCase runs claim extraction and confidence scoring on
// raw text without touching any stored loan. Loan officers use it to preview
// how a description will be read before an application is submitted.
type AnalyzeDescriptionUseCase struct {
	extractor *service.ClaimExtractor
	scorer    *service.ConfidenceScorer
}

// NewAnalyzeDescriptionUseCase wires dependencies.
func NewAnalyzeDescriptionUseCase(
	extractor *service.ClaimExtractor,
	scorer *service.ConfidenceScorer,
) *AnalyzeDescriptionUseCase {
	return &AnalyzeDescriptionUseCase{extractor: extractor, scorer: scorer}
}

// Execute extracts a structured claim from the description and scores it.
func (uc *AnalyzeDescriptionUseCase) Execute(
	_ context.Context,
	req dto.AnalyzeDescriptionRequest,
) (dto.AnalyzeDescriptionResponse, error) {
	if req.Description == "" {
		return dto.AnalyzeDescriptionResponse{}, errors.New("description is required")
	}

	claim := uc.extractor.Extract(req.Description)
	confidence := uc.scorer.Score(claim)

	return dto.AnalyzeDescriptionResponse{
		Claim:      toClaimResponse(claim),
		Confidence: confidence.Confidence,
		Signals:    toSignalResponses(confidence.Signals),
	}, nil
}
