package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpmsdash/internal/models"
)

func fieldErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func TestCompanyCreate(t *testing.T) {
	v := New()

	ok := models.CompanyCreate{
		Name:        "Acme",
		BrandColour: models.Ptr("#1a2B3c"),
		BrandLogo:   models.Ptr("https://cdn.example.com/logo.png"),
	}
	require.NoError(t, v.Struct(ok))

	short := ok
	short.BrandColour = models.Ptr("#abc")
	require.NoError(t, v.Struct(short))

	bad := models.CompanyCreate{
		Name:         "   ",
		BrandColour:  models.Ptr("red"),
		HomePhoto:    models.Ptr("not a url"),
		BrandFavicon: models.Ptr("https://example.com/" + strings.Repeat("a", 250)),
	}
	errs := fieldErrors(t, v.Struct(bad))
	assert.Equal(t, "is required", errs["company_name"])
	assert.Equal(t, "must be a hex colour such as #1A2B3C", errs["company_brand_colour"])
	assert.Equal(t, "must be a valid URL", errs["company_home_photo"])
	assert.Equal(t, "must be at most 255 characters", errs["company_brand_favicon"])
}

func TestCompanyNameLength(t *testing.T) {
	errs := fieldErrors(t, New().Struct(models.CompanyCreate{Name: strings.Repeat("x", 256)}))
	assert.Contains(t, errs, "company_name")
	require.NoError(t, New().Struct(models.CompanyCreate{Name: strings.Repeat("x", 255)}))
}

func TestUpdateValidatesOnlySetFields(t *testing.T) {
	v := New()
	require.NoError(t, v.Struct(models.CompanyUpdate{}))
	require.NoError(t, v.Struct(models.CompanyUpdate{Enabled: models.Ptr(true)}))

	errs := fieldErrors(t, v.Struct(models.CompanyUpdate{Name: models.Ptr("")}))
	assert.Equal(t, "is required", errs["company_name"])
}

func TestNewUserNestedFieldNames(t *testing.T) {
	errs := fieldErrors(t, New().Struct(models.NewUser{
		User:     models.UserCreate{FirstName: "Ada", Email: "nope"},
		Password: "short",
	}))
	assert.Equal(t, "is required", errs["user_last_name"])
	assert.Equal(t, "must be a valid email address", errs["user_email"])
	assert.Equal(t, "must be at least 8 characters", errs["password"])
	assert.NotContains(t, errs, "user_first_name")
}

func TestConnectorVocabulary(t *testing.T) {
	v := New()
	c := models.DefaultConnectorCreate()
	c.ID, c.CPID = 1, 4
	require.NoError(t, v.Struct(c))

	c.Status = "Sleeping"
	c.ErrorCode = "Melted"
	errs := fieldErrors(t, v.Struct(c))
	assert.Contains(t, errs, "connector_status")
	assert.Contains(t, errs, "connector_error_code")
}

func TestSessionActions(t *testing.T) {
	v := New()
	require.NoError(t, v.Struct(models.SessionStop{
		EndTime:    "2024-05-01T10:00:00Z",
		MeterStop:  12000,
		EnergyKWh:  "12.5",
		StopReason: models.Ptr("Remote"),
	}))
	require.NoError(t, v.Struct(models.SessionStop{EndTime: "2024-05-01T10:00:00", EnergyKWh: "0"}))

	errs := fieldErrors(t, v.Struct(models.SessionStop{EndTime: "yesterday", EnergyKWh: "lots", StopReason: models.Ptr("Bored")}))
	assert.Contains(t, errs, "charge_session_end_time")
	assert.Contains(t, errs, "charge_session_energy_kwh")
	assert.Contains(t, errs, "charge_session_stop_reason")

	require.NoError(t, v.Struct(models.SessionPayment{PaymentStatus: models.PaymentRefunded}))
	fieldErrors(t, v.Struct(models.SessionPayment{PaymentStatus: "Maybe"}))
}

func TestRemoteCommandForms(t *testing.T) {
	v := New()
	require.NoError(t, v.Struct(models.RemoteStart{IDTag: "20240101120000", ConnectorID: 1}))

	errs := fieldErrors(t, v.Struct(models.RemoteStart{IDTag: strings.Repeat("9", 21), ConnectorID: 0}))
	assert.Equal(t, "must be at most 20 characters", errs["id_tag"])
	assert.Equal(t, "must be greater than 0", errs["connector_id"])

	fieldErrors(t, v.Struct(models.RemoteStop{}))
	fieldErrors(t, v.Struct(models.Reset{Type: "Medium"}))
	require.NoError(t, v.Struct(models.DefaultReset()))
}

func TestTariffTimes(t *testing.T) {
	v := New()
	tc := models.DefaultTariffCreate()
	tc.CompanyID, tc.Name = 1, "Night saver"
	tc.NighttimeFrom = models.Ptr("22:00:00")
	require.NoError(t, v.Struct(tc))

	tc.NighttimeTo = models.Ptr("6am")
	errs := fieldErrors(t, v.Struct(tc))
	assert.Equal(t, "must be a time of day as HH:MM:SS", errs["tariffs_nighttime_to"])
}

func TestValidationErrorsMessage(t *testing.T) {
	err := ValidationErrors{"b": "is required", "a": "is invalid"}
	assert.Equal(t, "invalid form: a: is invalid; b: is required", err.Error())
}

func TestDeleteConfirmation(t *testing.T) {
	d := NewDeleteConfirmation("Acme Energy")
	assert.False(t, d.Enabled())

	for _, typed := range []string{"", "acme energy", "Acme", "Acme Energy ", " Acme Energy", "Acme  Energy"} {
		d.Type(typed)
		assert.False(t, d.Enabled(), "typed %q", typed)
	}

	d.Type("Acme Energy")
	assert.True(t, d.Enabled())

	assert.ErrorIs(t, Confirm("Acme Energy", "Acme"), ErrConfirmationMismatch)
	assert.NoError(t, Confirm("Acme Energy", "Acme Energy"))
	assert.ErrorIs(t, Confirm("", ""), ErrConfirmationMismatch)
}
