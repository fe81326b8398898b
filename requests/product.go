// Package requests parses and validates form submissions.
package requests

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/pkg/storage"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Form field names. They double as ErrorMap keys.
const (
	FieldName         = "name"
	FieldPriceInCents = "priceInCents"
	FieldDescription  = "description"
	FieldFile         = "file"
	FieldImage        = "image"
)

// DefaultMaxUploadSize bounds one add-product request.
const DefaultMaxUploadSize int64 = 32 << 20

var (
	ErrMalformedForm = errors.New("requests: malformed multipart form")
	ErrTooLarge      = errors.New("requests: request body too large")
)

// ErrorMap holds the first validation message per field. A missing key
// means the field is valid.
type ErrorMap map[string]string

func (m ErrorMap) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// NewErrorMap flattens errs, keeping the first message per field.
func NewErrorMap(errs validator.ValidationErrors) ErrorMap {
	if len(errs) == 0 {
		return ErrorMap{}
	}
	return ErrorMap(errs.Map())
}

// ProductForm is the raw add-product or edit-product submission. Text fields keep what
// the user typed so the form can be shown again.
type ProductForm struct {
	Name         string
	PriceInCents string
	Description  string
	File         *multipart.FileHeader
	Image        *multipart.FileHeader

	// MaxFileSize limits each upload; zero disables the check.
	MaxFileSize int64
}

// ParseProductForm reads every field without validating any of them.
// Missing uploads are left nil.
func ParseProductForm(r *http.Request, maxSize int64) (ProductForm, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	if r.ContentLength > maxSize {
		return ProductForm{}, ErrTooLarge
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ProductForm{}, errors.Join(ErrTooLarge, err)
		}
		return ProductForm{}, errors.Join(ErrMalformedForm, err)
	}

	return ProductForm{
		Name:         r.PostFormValue(FieldName),
		PriceInCents: r.PostFormValue(FieldPriceInCents),
		Description:  r.PostFormValue(FieldDescription),
		File:         firstFile(r.MultipartForm, FieldFile),
		Image:        firstFile(r.MultipartForm, FieldImage),
		MaxFileSize:  maxSize,
	}, nil
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	if form == nil || len(form.File[field]) == 0 {
		return nil
	}
	return form.File[field][0]
}

// Price parses PriceInCents. ok is false for empty or non-integer input.
func (f ProductForm) Price() (int64, bool) {
	cents, err := strconv.ParseInt(strings.TrimSpace(f.PriceInCents), 10, 64)
	return cents, err == nil
}

// FormFromProduct prefills the edit form with the stored values.
func FormFromProduct(p catalog.Product) ProductForm {
	return ProductForm{
		Name:         p.Name,
		PriceInCents: strconv.FormatInt(p.PriceInCents, 10),
		Description:  p.Description,
	}
}

// Validate checks an add-product submission: every field is required.
// It returns all failures, or nil.
func (f ProductForm) Validate() validator.ValidationErrors {
	return f.validate(true)
}

// ValidateUpdate checks an edit submission. Uploads are optional, but one
// that is sent must pass the same checks as on create.
func (f ProductForm) ValidateUpdate() validator.ValidationErrors {
	return f.validate(false)
}

func (f ProductForm) validate(uploadsRequired bool) validator.ValidationErrors {
	priceRaw := strings.TrimSpace(f.PriceInCents)
	price, priceOK := f.Price()

	rules := []validator.Rule{
		validator.RequiredString(FieldName, f.Name),
		validator.RequiredString(FieldPriceInCents, priceRaw),
		validator.When(priceRaw != "",
			validator.Check(FieldPriceInCents, priceOK, "must be a whole number of cents")),
		validator.When(priceOK, validator.MinNum(FieldPriceInCents, price, 1)),
		validator.When(priceOK, validator.MaxNum(FieldPriceInCents, price, catalog.MaxPriceInCents)),
		validator.RequiredString(FieldDescription, f.Description),
	}
	if uploadsRequired || f.File != nil {
		rules = append(rules, uploadRule(FieldFile, f.File, f.uploadRules()...))
	}
	if uploadsRequired || f.Image != nil {
		rules = append(rules, uploadRule(FieldImage, f.Image, append(f.uploadRules(), storage.ImageOnly())...))
	}

	return validator.ExtractValidationErrors(validator.Apply(rules...))
}

func (f ProductForm) uploadRules() []storage.Rule {
	rules := []storage.Rule{storage.NotEmpty()}
	if f.MaxFileSize > 0 {
		rules = append(rules, storage.MaxSize(f.MaxFileSize))
	}
	return rules
}

func uploadRule(field string, fh *multipart.FileHeader, rules ...storage.Rule) validator.Rule {
	if err := storage.ValidateFile(field, fh, rules...); err != nil {
		return validator.Check(field, false, err.Message)
	}
	return validator.Check(field, true, "")
}

// Update converts a validated edit form into pipeline input. Uploads that
// were not sent stay nil.
func (f ProductForm) Update() catalog.ProductUpdate {
	price, _ := f.Price()
	return catalog.ProductUpdate{
		Name:         strings.TrimSpace(f.Name),
		PriceInCents: price,
		Description:  strings.TrimSpace(f.Description),
		File:         f.File,
		Image:        f.Image,
	}
}

// Product converts a validated form into pipeline input.
func (f ProductForm) Product() catalog.NewProduct {
	price, _ := f.Price()
	return catalog.NewProduct{
		Name:         strings.TrimSpace(f.Name),
		PriceInCents: price,
		Description:  strings.TrimSpace(f.Description),
		File:         f.File,
		Image:        f.Image,
	}
}
