package services

import (
	"context"
	"fmt"
	"log/slog"

	"seatwell/models"
	"seatwell/utils"
)

// ContactService accepts contact form submissions. Nothing is sent or stored;
// the submission is logged under a reference code.
type ContactService struct {
	logger *slog.Logger
}

func NewContactService(logger *slog.Logger) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{logger: logger}
}

func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (string, error) {
	code, err := utils.GenerateCode(4)
	if err != nil {
		return "", fmt.Errorf("generate contact reference: %w", err)
	}
	reference := "SW-" + code

	s.logger.Info("Contact form submission",
		"reference", reference,
		"name", req.Name,
		"email", req.Email,
		"subject", req.Subject,
		"message", req.Message,
	)
	return reference, nil
}
