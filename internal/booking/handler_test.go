package booking

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestBookSlotHandler_Created(t *testing.T) {
	h := NewHandler(newService(&fakeDynamo{}), nil)

	rec := postJSON(t, h.BookSlot, `{
		"provider_id": "dr-1",
		"provider_name": "Dr. Okafor",
		"date": "2026-09-14",
		"start_time": "09:00",
		"end_time": "10:00",
		"client_name": "Maya Chen",
		"client_email": "maya@example.com",
		"pet_name": "Biscuit"
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Biscuit")
}

func TestBookSlotHandler_SlotTakenConflict(t *testing.T) {
	fake := &fakeDynamo{transactErr: &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		},
	}}
	h := NewHandler(newService(fake), nil)

	rec := postJSON(t, h.BookSlot, `{
		"provider_id": "dr-1",
		"date": "2026-09-14",
		"start_time": "09:00",
		"end_time": "10:00",
		"client_name": "Maya Chen",
		"pet_name": "Biscuit"
	}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBookSlotHandler_InvalidRequest(t *testing.T) {
	fake := &fakeDynamo{}
	h := NewHandler(newService(fake), nil)

	rec := postJSON(t, h.BookSlot, `{"provider_id": "dr-1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fake.transactIn)
}

func TestCreateBoardingHandler(t *testing.T) {
	fake := &fakeDynamo{}
	h := NewHandler(newService(fake), nil)

	rec := postJSON(t, h.CreateBoarding, `{
		"owner_name": "Dana Reyes",
		"owner_email": "dana@example.com",
		"pet_name": "Biscuit",
		"pet_type": "dog",
		"start_date": "2026-09-20",
		"end_date": "2026-09-24"
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotNil(t, fake.putIn)
}

func TestCreateTransportHandler_BadBody(t *testing.T) {
	h := NewHandler(newService(&fakeDynamo{}), nil)

	rec := postJSON(t, h.CreateTransport, `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
