// Package propertyapi is the portal's HTTP client for the Property API.
package propertyapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"groupstays/internal/domain/booking"
	"groupstays/internal/domain/enquiry"
	"groupstays/internal/domain/listing"
	"groupstays/internal/domain/payment"
	"groupstays/internal/domain/plan"
	"groupstays/internal/domain/property"
)

type Client struct {
	http *resty.Client
}

// New builds a client rooted at baseURL (for example http://localhost:8080/api).
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "groupstays-portal/1.0")
	return &Client{http: c}
}

func (c *Client) req(ctx context.Context, token string) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// do checks the response status and decodes errors. out was already set as
// the result target.
func do(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("property api: %w", err)
	}
	if resp.IsError() {
		return parseError(resp.StatusCode(), resp.Body())
	}
	return nil
}

func (c *Client) CreateProperty(ctx context.Context, token string, p listing.Payload) (*property.Property, error) {
	var out property.Property
	resp, err := c.req(ctx, token).SetBody(p).SetResult(&out).Post("/properties")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProperty(ctx context.Context, token, id string, p listing.Payload) (*property.Property, error) {
	var out property.Property
	resp, err := c.req(ctx, token).SetQueryParam("id", id).SetBody(p).SetResult(&out).Put("/properties")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProperty(ctx context.Context, token, id string) (*property.Property, error) {
	var out property.Property
	resp, err := c.req(ctx, token).SetQueryParam("id", id).SetResult(&out).Get("/properties")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitProperty(ctx context.Context, token, id string) (*property.Property, error) {
	var out property.Property
	resp, err := c.req(ctx, token).SetBody(map[string]string{"propertyId": id}).SetResult(&out).Post("/properties/submit")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProperty(ctx context.Context, token, id string) error {
	resp, err := c.req(ctx, token).SetPathParam("id", id).Delete("/owner/properties/{id}")
	return do(resp, err)
}

func (c *Client) ListProperties(ctx context.Context, token, status string) ([]*property.Property, error) {
	var out []*property.Property
	r := c.req(ctx, token).SetResult(&out)
	if status != "" {
		r.SetQueryParam("status", status)
	}
	resp, err := r.Get("/owner/properties")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Availability(ctx context.Context, token, id string) (*property.Availability, error) {
	var out property.Availability
	resp, err := c.req(ctx, token).SetPathParam("id", id).SetResult(&out).Get("/owner/properties/{id}/availability")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Bookings(ctx context.Context, token string, limit int) ([]*booking.Booking, error) {
	var out []*booking.Booking
	resp, err := c.req(ctx, token).SetQueryParam("limit", strconv.Itoa(limit)).SetResult(&out).Get("/owner/bookings")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, token string, id int64, status booking.Status) (*booking.Booking, error) {
	var out booking.Booking
	resp, err := c.req(ctx, token).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(map[string]booking.Status{"bookingStatus": status}).
		SetResult(&out).
		Patch("/owner/bookings/{id}")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBooking(ctx context.Context, token string, id int64) error {
	resp, err := c.req(ctx, token).SetPathParam("id", strconv.FormatInt(id, 10)).Delete("/owner/bookings/{id}")
	return do(resp, err)
}

func (c *Client) Enquiries(ctx context.Context, token, status, propertyID string) (*enquiry.List, error) {
	var out enquiry.List
	r := c.req(ctx, token).SetResult(&out)
	if status != "" {
		r.SetQueryParam("status", status)
	}
	if propertyID != "" {
		r.SetQueryParam("propertyId", propertyID)
	}
	resp, err := r.Get("/owner/enquiries")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEnquiryStatus(ctx context.Context, token string, id int64, status enquiry.Status) (*enquiry.Enquiry, error) {
	var out enquiry.Enquiry
	resp, err := c.req(ctx, token).
		SetBody(enquiry.UpdateStatusRequest{ID: id, Status: status}).
		SetResult(&out).
		Patch("/owner/enquiries")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PaymentHistory(ctx context.Context, token string, limit, offset int) (*payment.History, error) {
	var out payment.History
	resp, err := c.req(ctx, token).
		SetQueryParams(map[string]string{"limit": strconv.Itoa(limit), "offset": strconv.Itoa(offset)}).
		SetResult(&out).
		Get("/owner/payment-history")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Plans(ctx context.Context) ([]*plan.Plan, error) {
	var out []*plan.Plan
	resp, err := c.req(ctx, "").SetResult(&out).Get("/plans")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PlanPurchases(ctx context.Context, token string) ([]*plan.Purchase, error) {
	var out []*plan.Purchase
	resp, err := c.req(ctx, token).SetResult(&out).Get("/owner/plan-purchases")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkPlanUsed(ctx context.Context, token, purchaseID, propertyID string) error {
	resp, err := c.req(ctx, token).
		SetBody(plan.MarkUsedRequest{PurchaseID: purchaseID, PropertyID: propertyID}).
		Post("/owner/mark-plan-used")
	return do(resp, err)
}

// InternalMarkPlanUsed is the retry path; it authenticates with the shared
// internal token instead of the owner's.
func (c *Client) InternalMarkPlanUsed(ctx context.Context, internalToken, purchaseID, propertyID string, userID int64) error {
	resp, err := c.req(ctx, internalToken).
		SetBody(plan.InternalMarkUsedRequest{PurchaseID: purchaseID, PropertyID: propertyID, UserID: userID}).
		Post("/internal/plan-purchases/mark-used")
	return do(resp, err)
}

type uploadResult struct {
	URL string `json:"url"`
}

// UploadImage sends one file to POST /uploads and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, token string, f listing.MediaFile) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var out uploadResult
	resp, err := c.req(ctx, token).
		SetMultipartField("file", f.Name, f.MimeType, rc).
		SetResult(&out).
		Post("/uploads")
	if err := do(resp, err); err != nil {
		return "", err
	}
	return out.URL, nil
}

// ImageStore binds the owner's token so uploads satisfy listing.ImageStore.
func (c *Client) ImageStore(token string) listing.ImageStore {
	return &imageStore{client: c, token: token}
}

type imageStore struct {
	client *Client
	token  string
}

func (s *imageStore) StoreImage(ctx context.Context, f listing.MediaFile) (string, error) {
	return s.client.UploadImage(ctx, s.token, f)
}
