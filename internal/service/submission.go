package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stagecrew/propshelf/internal/domain"
)

// defaultStatus is applied when a creation submission omits status.
const defaultStatus = "Available"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json names so error bodies match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}

	return v
}

// PropSubmission is an incoming create-prop payload. Pointer fields
// distinguish a key that is absent from one that is present but empty.
type PropSubmission struct {
	Location    *string   `json:"location" validate:"required,notblank"`
	StorageID   *string   `json:"storageId" validate:"required,notblank"`
	Description string    `json:"description"`
	Keywords    string    `json:"keywords"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Quantity    *Quantity `json:"quantity"`
	Photos      *[]string `json:"photos" validate:"required"`
	Timestamp   *string   `json:"timestamp" validate:"required,notblank"`
}

// PropUpdate is an incoming partial update. Every field is optional; absent
// fields keep their stored values.
type PropUpdate struct {
	Location    *string   `json:"location"`
	StorageID   *string   `json:"storageId"`
	Description *string   `json:"description"`
	Keywords    *string   `json:"keywords"`
	Category    *string   `json:"category"`
	Status      *string   `json:"status"`
	Quantity    *Quantity `json:"quantity"`
}

// Quantity accepts a JSON number or a numeric string, keeping the raw token
// so validation can tell present-but-invalid apart from absent.
type Quantity struct {
	raw string
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	q.raw = strings.TrimSpace(s)
	return nil
}

// Value parses the quantity as a non-negative integer.
func (q *Quantity) Value() (int, error) {
	n, err := strconv.Atoi(q.raw)
	if err != nil {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return n, nil
}

// validateSubmission checks every rule independently and returns either the
// normalized record (without photo files) plus the raw photo payloads, or a
// ValidationError listing every failing field.
func validateSubmission(sub *PropSubmission) (*domain.Prop, []string, error) {
	var fields []domain.FieldError

	if err := validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, nil, fmt.Errorf("failed to validate submission: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, domain.FieldError{Field: fe.Field(), Reason: reasonFor(fe)})
		}
	}

	// Quantity defaults to 1 only when the key is entirely absent; a present
	// value, including an empty string, must parse as a non-negative integer.
	quantity := 1
	if sub.Quantity != nil {
		n, err := sub.Quantity.Value()
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "quantity", Reason: err.Error()})
		} else {
			quantity = n
		}
	}

	if len(fields) > 0 {
		return nil, nil, &domain.ValidationError{Fields: fields}
	}

	status := sub.Status
	if status == "" {
		status = defaultStatus
	}

	prop := &domain.Prop{
		Location:    strings.TrimSpace(*sub.Location),
		StorageID:   strings.TrimSpace(*sub.StorageID),
		Description: sub.Description,
		Keywords:    sub.Keywords,
		Category:    sub.Category,
		Status:      status,
		Quantity:    quantity,
		Timestamp:   *sub.Timestamp,
	}
	return prop, *sub.Photos, nil
}

// applyUpdate overlays the supplied fields onto current, validating the
// result. Omitted fields, quantity included, keep their stored values.
func applyUpdate(current *domain.Prop, upd *PropUpdate) error {
	var fields []domain.FieldError

	if upd.Location != nil {
		loc := strings.TrimSpace(*upd.Location)
		if loc == "" {
			fields = append(fields, domain.FieldError{Field: "location", Reason: "must not be empty"})
		} else {
			current.Location = loc
		}
	}
	if upd.StorageID != nil {
		sid := strings.TrimSpace(*upd.StorageID)
		if sid == "" {
			fields = append(fields, domain.FieldError{Field: "storageId", Reason: "must not be empty"})
		} else {
			current.StorageID = sid
		}
	}
	if upd.Description != nil {
		current.Description = *upd.Description
	}
	if upd.Keywords != nil {
		current.Keywords = *upd.Keywords
	}
	if upd.Category != nil {
		current.Category = *upd.Category
	}
	if upd.Status != nil {
		current.Status = *upd.Status
	}
	if upd.Quantity != nil {
		n, err := upd.Quantity.Value()
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "quantity", Reason: err.Error()})
		} else {
			current.Quantity = n
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "missing"
	case "notblank":
		return "must not be empty"
	default:
		return "invalid"
	}
}
