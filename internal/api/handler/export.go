package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/holidaymoo/tripsheet/internal/api/models"
	"github.com/holidaymoo/tripsheet/internal/api/response"
	"github.com/holidaymoo/tripsheet/internal/report"
	"github.com/holidaymoo/tripsheet/internal/schedule"
)

// ExportHandler handles workbook export endpoints.
type ExportHandler struct {
	exporter *report.Exporter
	validate *validator.Validate
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exporter *report.Exporter) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ExportTrip handles POST /v1/exports/trip - build an XLSX workbook for a
// trip and return it base64 encoded.
//
// Failures here use the {success:false, error} envelope instead of
// problem+json so spreadsheet clients can branch on a single flag.
func (h *ExportHandler) ExportTrip(w http.ResponseWriter, r *http.Request) {
	var input models.ExportTripRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		exportFailure(w, r, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	if err := h.validate.Struct(input); err != nil {
		exportFailure(w, r, http.StatusBadRequest, "invalid export request", fieldErrors(err))
		return
	}

	start := schedule.ExtractDate(input.Trip.StartDate)
	end := schedule.ExtractDate(input.Trip.EndDate)
	if end.Before(start) {
		exportFailure(w, r, http.StatusBadRequest, "trip endDate is before startDate", []models.FieldError{
			{Field: "tripData.endDate", Message: "must be on or after tripData.startDate", Code: "ORDER"},
		})
		return
	}

	variant := report.Variant(input.Variant)
	if input.Variant == "" {
		variant = report.VariantDashboard
	}

	res, err := h.exporter.Export(r.Context(), input.Calendar, input.Trip, variant)
	if err != nil {
		exportFailure(w, r, http.StatusInternalServerError, "failed to build workbook", nil)
		return
	}

	response.JSON(w, r, http.StatusOK, models.ExportTripResponse{
		Success:  true,
		Filename: res.Filename,
		Data:     base64.StdEncoding.EncodeToString(res.Data),
		Size:     len(res.Data),
	})
}

func exportFailure(w http.ResponseWriter, r *http.Request, status int, msg string, errs []models.FieldError) {
	response.JSON(w, r, status, models.ExportError{Success: false, Error: msg, Errors: errs})
}

// fieldErrors converts validator errors into the API's field error shape.
func fieldErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{
			Field:   fe.Namespace(),
			Message: "failed " + fe.Tag() + " validation",
			Code:    strings.ToUpper(fe.Tag()),
		})
	}
	return out
}
