package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateOmitsUnsetFields(t *testing.T) {
	b, err := json.Marshal(CompanyUpdate{Enabled: Ptr(false)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"company_enabled":false}`, string(b))
}

func TestChargePointFlattensOperatingHours(t *testing.T) {
	body := `{"cp_id":3,"cp_name":"CP-3","cp_mon_from":"08:00:00","cp_mon_to":"18:00:00","cp_is_online":true}`
	var cp ChargePoint
	require.NoError(t, json.Unmarshal([]byte(body), &cp))
	assert.Equal(t, "08:00:00", Deref(cp.MonFrom))
	assert.Equal(t, "18:00:00", Deref(cp.MonTo))
	assert.True(t, cp.Online)
	assert.Equal(t, "CP-3", cp.DisplayName())
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: Ptr("Ada"), LastName: Ptr("Lovelace")}.DisplayName())
	assert.Equal(t, "ada@example.com", User{Email: Ptr("ada@example.com")}.DisplayName())
}

func TestConfirmNameFallsBackToID(t *testing.T) {
	assert.Equal(t, "Sam", ConfirmName(Driver{ID: 9, FullName: "Sam"}))
	assert.Equal(t, "9", ConfirmName(Driver{ID: 9}))
}

func TestDefaultsMergeWithSubmittedForm(t *testing.T) {
	form := DefaultDriverCreate()
	require.NoError(t, json.Unmarshal([]byte(`{"driver_company_id":1,"driver_full_name":"Sam","driver_payment_alerts":false}`), &form))
	assert.True(t, form.Enabled)
	assert.True(t, form.ActionAlerts)
	assert.False(t, form.PaymentAlerts)

	conn := DefaultConnectorCreate()
	assert.Equal(t, ConnectorAvailable, conn.Status)
	assert.Equal(t, ConnectorNoError, conn.ErrorCode)
	assert.Equal(t, DefaultRoleLevel, DefaultUserRoleCreate().Level)
	assert.False(t, DefaultCompanyCreate().Enabled)
}

func TestLoginResultSession(t *testing.T) {
	var res LoginResult
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"a","token_type":"bearer","expires_in":60,"charger_info":{"cp_id":2,"cp_name":"CP-2","connector_id":1}}`), &res))
	s := res.Session()
	assert.Equal(t, "a", s.AccessToken)
	assert.Empty(t, s.RefreshToken)
	assert.Equal(t, 60, s.ExpiresIn)
	require.NotNil(t, s.ChargerInfo)
	assert.Equal(t, 2, s.ChargerInfo.CPID)
}

func TestCommandResultAccepted(t *testing.T) {
	var r CommandResult
	require.NoError(t, json.Unmarshal([]byte(`{"status":{"status":"Accepted"},"cp_id":1,"cp_name":"CP-1","reset_type":"Soft"}`), &r))
	assert.True(t, r.Accepted())
	assert.Equal(t, "Soft", Deref(r.ResetType))
}
