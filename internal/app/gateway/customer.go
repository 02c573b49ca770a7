package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mkim/storefront-client/internal/app/model"
	apperrors "github.com/mkim/storefront-client/internal/errors"
)

// CustomerInfo fetches the customer profile for a user. A missing profile is
// reported as found=false, not an error, because first-time users have none
// until the checkout-readiness step creates it.
func (c *Client) CustomerInfo(ctx context.Context, uid int) (*model.Customer, bool, error) {
	query := url.Values{"uid": {strconv.Itoa(uid)}}
	body, status, err := c.do(ctx, http.MethodGet, "/customer/customer-info", query, nil)
	if err != nil {
		return nil, false, err
	}

	if status >= 400 && status < 500 {
		return nil, false, nil
	}
	if status < 200 || status >= 300 {
		return nil, false, apperrors.Network(apperrors.NetworkBadStatus, serverMessage(body, status), nil)
	}

	var customer model.Customer
	if err := json.Unmarshal(body, &customer); err != nil {
		return nil, false, apperrors.Network(apperrors.NetworkBadPayload, "decode customer response", err)
	}
	return &customer, true, nil
}

type upsertCustomerRequest struct {
	UID int `json:"uid"`
	model.ProfileFields
}

// UpsertCustomer creates the profile when exists is false (POST) and updates
// it otherwise (PUT). Field validation failures surface as validation errors.
func (c *Client) UpsertCustomer(ctx context.Context, uid int, fields model.ProfileFields, exists bool) (*model.Customer, error) {
	method := http.MethodPost
	if exists {
		method = http.MethodPut
	}

	body, status, err := c.do(ctx, method, "/customer/customer-info", nil, upsertCustomerRequest{
		UID:           uid,
		ProfileFields: fields,
	})
	if err != nil {
		return nil, err
	}

	if status >= 400 && status < 500 {
		return nil, apperrors.Validation(apperrors.ValidationInvalidInput, serverMessage(body, status))
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.Network(apperrors.NetworkBadStatus, serverMessage(body, status), nil)
	}

	var customer model.Customer
	if err := json.Unmarshal(body, &customer); err != nil {
		return nil, apperrors.Network(apperrors.NetworkBadPayload, "decode customer response", err)
	}
	return &customer, nil
}
