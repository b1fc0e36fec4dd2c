package handler

import (
	"strings"

	"verity/internal/governance/models"
	"verity/internal/governance/pipeline"
	id "verity/pkg/domain"
	dErrors "verity/pkg/domain-errors"
)

const (
	maxReasonLength = 2000
	maxTextLength   = 20000
	maxEmailLength  = 254
)

// CreateEscalationRequest is the body of POST /admin/escalations.
type CreateEscalationRequest struct {
	ComplaintID string `json:"complaint_id"`
	Reason      string `json:"reason"`
}

// Validate implements httputil.Validatable.
func (r *CreateEscalationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Reason) > maxReasonLength {
		return dErrors.New(dErrors.CodeValidation, "reason must be at most 2000 characters")
	}
	complaintID, err := id.ParseExternalID("complaint_id", r.ComplaintID)
	if err != nil {
		return err
	}
	r.ComplaintID = complaintID.String()
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	return nil
}

// UpdateEscalationRequest is the body of PATCH /admin/escalations/{caseID}.
type UpdateEscalationRequest struct {
	Status string `json:"status"`

	parsedStatus models.EscalationStatus
}

// Validate implements httputil.Validatable.
func (r *UpdateEscalationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.Status) == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	status, err := models.ParseEscalationStatus(r.Status)
	if err != nil {
		return err
	}
	r.parsedStatus = status
	return nil
}

func (r *UpdateEscalationRequest) ParsedStatus() models.EscalationStatus {
	return r.parsedStatus
}

// FollowUpEventRequest is the body of POST /internal/events/follow-up.
type FollowUpEventRequest struct {
	ResponseID     string `json:"response_id"`
	BusinessUserID string `json:"business_user_id"`
	BrandID        string `json:"brand_id"`
	SenderEmail    string `json:"sender_email"`
	Text           string `json:"text"`
}

// Validate implements httputil.Validatable. A follow-up without a response id only
// re-evaluates the brand.
func (r *FollowUpEventRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Text) > maxTextLength {
		return dErrors.New(dErrors.CodeValidation, "text is too long")
	}
	if len(r.SenderEmail) > maxEmailLength {
		return dErrors.New(dErrors.CodeValidation, "sender_email is too long")
	}
	brandID, err := id.ParseExternalID("brand_id", r.BrandID)
	if err != nil {
		return err
	}
	r.BrandID = brandID.String()

	r.ResponseID = strings.TrimSpace(r.ResponseID)
	if r.ResponseID == "" {
		return nil
	}
	responseID, err := id.ParseExternalID("response_id", r.ResponseID)
	if err != nil {
		return err
	}
	r.ResponseID = responseID.String()
	userID, err := id.ParseExternalID("business_user_id", r.BusinessUserID)
	if err != nil {
		return err
	}
	r.BusinessUserID = userID.String()
	r.SenderEmail = strings.TrimSpace(r.SenderEmail)
	return nil
}

func (r *FollowUpEventRequest) Event() pipeline.FollowUpEvent {
	return pipeline.FollowUpEvent{
		ResponseID:     r.ResponseID,
		BusinessUserID: r.BusinessUserID,
		BrandID:        r.BrandID,
		SenderEmail:    r.SenderEmail,
		Text:           r.Text,
	}
}

// RatingEventRequest is the body of POST /internal/events/rating.
type RatingEventRequest struct {
	ComplaintID     string `json:"complaint_id"`
	BrandID         string `json:"brand_id"`
	UserID          string `json:"user_id"`
	Rating          int    `json:"rating"`
	ComplaintStatus string `json:"complaint_status"`
}

// Validate implements httputil.Validatable.
func (r *RatingEventRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Rating < 1 || r.Rating > models.MaxRating {
		return dErrors.New(dErrors.CodeValidation, "rating must be between 1 and 5")
	}
	complaintID, err := id.ParseExternalID("complaint_id", r.ComplaintID)
	if err != nil {
		return err
	}
	brandID, err := id.ParseExternalID("brand_id", r.BrandID)
	if err != nil {
		return err
	}
	userID, err := id.ParseExternalID("user_id", r.UserID)
	if err != nil {
		return err
	}
	r.ComplaintID, r.BrandID, r.UserID = complaintID.String(), brandID.String(), userID.String()
	r.ComplaintStatus = strings.ToUpper(strings.TrimSpace(r.ComplaintStatus))
	return nil
}

func (r *RatingEventRequest) Event() pipeline.RatingEvent {
	return pipeline.RatingEvent{
		ComplaintID:     r.ComplaintID,
		BrandID:         r.BrandID,
		UserID:          r.UserID,
		Rating:          r.Rating,
		ComplaintStatus: r.ComplaintStatus,
	}
}

// FlagEventRequest is the body of POST /internal/events/flag.
type FlagEventRequest struct {
	ComplaintID string `json:"complaint_id"`
	Reason      string `json:"reason"`
}

// Validate implements httputil.Validatable.
func (r *FlagEventRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Reason) > maxReasonLength {
		return dErrors.New(dErrors.CodeValidation, "reason must be at most 2000 characters")
	}
	complaintID, err := id.ParseExternalID("complaint_id", r.ComplaintID)
	if err != nil {
		return err
	}
	r.ComplaintID = complaintID.String()
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	return nil
}

func (r *FlagEventRequest) Event() pipeline.FlagEvent {
	return pipeline.FlagEvent{ComplaintID: r.ComplaintID, Reason: r.Reason}
}
