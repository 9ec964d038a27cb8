package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	apierrors "adrecon/internal/errors"
	"adrecon/internal/services"
	"adrecon/internal/validation"
	"adrecon/pkg/contracts/domain"
)

// Multipart field names used by the front-end
const (
	FieldCostFile    = "file1"
	FieldRevenueFile = "file2"
	FieldRate        = "rate"
	QueryFormat      = "format"
)

// multipartMemory is the part of a multipart body kept in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// UploadForm is the parsed upload request
type UploadForm struct {
	CostFile    *multipart.FileHeader `form:"file1" validate:"required"`
	RevenueFile *multipart.FileHeader `form:"file2" validate:"required"`
	Rate        string                `form:"rate" validate:"required,positive_decimal"`
	Format      string                `form:"format" validate:"omitempty,oneof=xlsx excel csv"`
}

// parseUploadForm reads the multipart body into an UploadForm. defaultFormat
// applies when the request names none.
func parseUploadForm(r *http.Request, defaultFormat domain.ReportFormat) (*UploadForm, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, apierrors.InvalidRequestWithError(err)
	}

	form := &UploadForm{
		CostFile:    firstFile(r.MultipartForm, FieldCostFile),
		RevenueFile: firstFile(r.MultipartForm, FieldRevenueFile),
		Rate:        strings.TrimSpace(r.FormValue(FieldRate)),
		Format:      strings.TrimSpace(r.URL.Query().Get(QueryFormat)),
	}
	if form.Format == "" {
		form.Format = r.FormValue(QueryFormat)
	}
	if form.Format == "" {
		form.Format = string(defaultFormat)
	}
	form.Format = strings.ToLower(strings.TrimSpace(form.Format))
	return form, nil
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	if form == nil || len(form.File[field]) == 0 {
		return nil
	}
	return form.File[field][0]
}

// validate checks the form and maps failures to the messages the front-end
// shows: missing files first, then the rate, then anything else.
func (f *UploadForm) validate(v *validation.RequestValidator) error {
	err := v.ValidateStruct(f)
	if err == nil {
		return nil
	}

	fields := validation.FailedFields(err)
	switch {
	case slices.Contains(fields, FieldCostFile), slices.Contains(fields, FieldRevenueFile):
		return apierrors.ErrMissingFile
	case slices.Contains(fields, FieldRate):
		return apierrors.ErrInvalidRate
	default:
		return err
	}
}

// toRequest reads both uploads and builds the service request
func (f *UploadForm) toRequest() (services.ReconcileRequest, error) {
	format, err := domain.ParseReportFormat(f.Format)
	if err != nil {
		return services.ReconcileRequest{}, apierrors.ErrValidation(QueryFormat, err.Error())
	}

	cost, err := readUpload(f.CostFile)
	if err != nil {
		return services.ReconcileRequest{}, err
	}
	revenue, err := readUpload(f.RevenueFile)
	if err != nil {
		return services.ReconcileRequest{}, err
	}

	return services.ReconcileRequest{
		Cost:    cost,
		Revenue: revenue,
		Rate:    decimal.RequireFromString(f.Rate),
		Format:  format,
	}, nil
}

func readUpload(fh *multipart.FileHeader) (services.Upload, error) {
	file, err := fh.Open()
	if err != nil {
		return services.Upload{}, apierrors.NewParsingError(fmt.Sprintf("cannot open upload %s", fh.Filename), err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return services.Upload{}, apierrors.NewParsingError(fmt.Sprintf("cannot read upload %s", fh.Filename), err)
	}
	return services.Upload{Name: fh.Filename, Data: data}, nil
}
