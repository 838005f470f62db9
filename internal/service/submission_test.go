package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecrew/propshelf/internal/domain"
)

func decodeSubmission(t *testing.T, raw string) *PropSubmission {
	t.Helper()
	var sub PropSubmission
	require.NoError(t, json.Unmarshal([]byte(raw), &sub))
	return &sub
}

func TestValidateSubmission(t *testing.T) {
	sub := decodeSubmission(t, `{
		"storageId": "BOX-12",
		"location": "Warehouse A",
		"quantity": 3,
		"timestamp": "2024-01-01T00:00:00Z",
		"photos": ["data:image/png;base64,iVBORw0KGgo="]
	}`)

	prop, photos, err := validateSubmission(sub)
	require.NoError(t, err)
	assert.Equal(t, "BOX-12", prop.StorageID)
	assert.Equal(t, "Warehouse A", prop.Location)
	assert.Equal(t, 3, prop.Quantity)
	assert.Equal(t, "Available", prop.Status, "status defaults when omitted")
	assert.Len(t, photos, 1)
}

func TestValidateSubmissionCollectsAllErrors(t *testing.T) {
	sub := decodeSubmission(t, `{"description": "just a description"}`)

	_, _, err := validateSubmission(sub)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := verr.FieldMap()
	assert.Contains(t, fields, "location")
	assert.Contains(t, fields, "storageId")
	assert.Contains(t, fields, "photos")
	assert.Contains(t, fields, "timestamp")
}

func TestValidateSubmissionBlankAfterTrim(t *testing.T) {
	sub := decodeSubmission(t, `{
		"storageId": "   ",
		"location": "Loft",
		"timestamp": "2024-01-01",
		"photos": []
	}`)

	_, _, err := validateSubmission(sub)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FieldMap(), "storageId")
	assert.NotContains(t, verr.FieldMap(), "location")
}

func TestValidateSubmissionTrimsFields(t *testing.T) {
	sub := decodeSubmission(t, `{
		"storageId": " BOX-1 ",
		"location": " Loft ",
		"timestamp": "2024-01-01",
		"photos": []
	}`)

	prop, _, err := validateSubmission(sub)
	require.NoError(t, err)
	assert.Equal(t, "BOX-1", prop.StorageID)
	assert.Equal(t, "Loft", prop.Location)
}

func TestValidateSubmissionEmptyPhotosAllowed(t *testing.T) {
	sub := decodeSubmission(t, `{
		"storageId": "BOX-1",
		"location": "Loft",
		"timestamp": "2024-01-01",
		"photos": []
	}`)

	_, photos, err := validateSubmission(sub)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestQuantityDefaultsWhenAbsent(t *testing.T) {
	sub := decodeSubmission(t, `{
		"storageId": "BOX-1",
		"location": "Loft",
		"timestamp": "2024-01-01",
		"photos": []
	}`)

	prop, _, err := validateSubmission(sub)
	require.NoError(t, err)
	assert.Equal(t, 1, prop.Quantity)
}

func TestQuantityRejectedWhenPresentButEmpty(t *testing.T) {
	sub := decodeSubmission(t, `{
		"storageId": "BOX-1",
		"location": "Loft",
		"timestamp": "2024-01-01",
		"photos": [],
		"quantity": ""
	}`)

	_, _, err := validateSubmission(sub)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FieldMap(), "quantity")
}

func TestQuantityAcceptsNumericString(t *testing.T) {
	sub := decodeSubmission(t, `{
		"storageId": "BOX-1",
		"location": "Loft",
		"timestamp": "2024-01-01",
		"photos": [],
		"quantity": "7"
	}`)

	prop, _, err := validateSubmission(sub)
	require.NoError(t, err)
	assert.Equal(t, 7, prop.Quantity)
}

func TestQuantityRejectsNegative(t *testing.T) {
	sub := decodeSubmission(t, `{
		"storageId": "BOX-1",
		"location": "Loft",
		"timestamp": "2024-01-01",
		"photos": [],
		"quantity": -2
	}`)

	_, _, err := validateSubmission(sub)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FieldMap(), "quantity")
}

func TestQuantityRejectsNonNumeric(t *testing.T) {
	sub := decodeSubmission(t, `{
		"storageId": "BOX-1",
		"location": "Loft",
		"timestamp": "2024-01-01",
		"photos": [],
		"quantity": "lots"
	}`)

	_, _, err := validateSubmission(sub)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FieldMap(), "quantity")
}

func TestApplyUpdatePartial(t *testing.T) {
	current := &domain.Prop{
		ID:        1,
		Location:  "Loft",
		StorageID: "BOX-1",
		Status:    "Available",
		Quantity:  5,
	}

	var upd PropUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"status": "Checked Out"}`), &upd))

	require.NoError(t, applyUpdate(current, &upd))
	assert.Equal(t, "Checked Out", current.Status)
	assert.Equal(t, 5, current.Quantity, "omitted quantity keeps stored value")
	assert.Equal(t, "Loft", current.Location)
	assert.Equal(t, "BOX-1", current.StorageID)
}

func TestApplyUpdateRejectsBlankStorageID(t *testing.T) {
	current := &domain.Prop{StorageID: "BOX-1", Location: "Loft"}

	var upd PropUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"storageId": "  "}`), &upd))

	err := applyUpdate(current, &upd)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FieldMap(), "storageId")
	assert.Equal(t, "BOX-1", current.StorageID)
}

func TestApplyUpdateRejectsNegativeQuantity(t *testing.T) {
	current := &domain.Prop{StorageID: "BOX-1", Location: "Loft", Quantity: 2}

	var upd PropUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": -1}`), &upd))

	err := applyUpdate(current, &upd)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 2, current.Quantity)
}
