// Package orders translates POS order calls into provider delivery calls.
// Every operation is stateless: a provider client is built from the caller's
// credentials, used once, and dropped. Failures are never retried.
package orders

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"doordash-adapter/internal/doordash"
	"doordash-adapter/internal/model"
)

// DefaultCancelReason is used when the caller omits one.
const DefaultCancelReason = "Customer request"

type Service struct {
	BaseURL string
	HTTP    *http.Client
	Log     logrus.FieldLogger
	Now     func() time.Time
}

func NewService(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Service {
	return &Service{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
		Now:     time.Now,
	}
}

type requestIDKey struct{}

// WithRequestID tags ctx so provider calls carry the inbound request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func (s *Service) client(ctx context.Context, creds model.ProviderCredentials) *doordash.Client {
	c := doordash.NewClient(s.BaseURL, creds, s.HTTP)
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		c.RequestID = id
	}
	return c
}

func (s *Service) CreateOrder(ctx context.Context, o model.OrderRequest, creds model.ProviderCredentials) (model.DeliveryResult, error) {
	if err := validateOrderRequest(&o); err != nil {
		return model.DeliveryResult{}, fail(CodeOrderCreationFailed, err)
	}
	payload, err := doordash.BuildDeliveryPayload(o)
	if err != nil {
		return model.DeliveryResult{}, fail(CodeOrderCreationFailed, err)
	}
	d, err := s.client(ctx, creds).CreateDelivery(ctx, payload)
	if err != nil {
		s.Log.WithError(err).WithField("order_id", o.OrderID).Error("order creation failed")
		return model.DeliveryResult{}, fail(CodeOrderCreationFailed, err)
	}
	s.Log.WithField("external_delivery_id", d.ExternalDeliveryID).Info("delivery created")

	res := model.DeliveryResult{
		ExternalOrderID:       d.ExternalDeliveryID,
		Status:                "accepted",
		EstimatedPickupTime:   d.PickupTimeEstimated,
		EstimatedDeliveryTime: d.DropoffTimeEstimated,
		TrackingURL:           d.TrackingURL,
	}
	if d.HasDasher() {
		res.Driver = &model.DriverInfo{Name: *d.DasherName, Phone: d.DasherPhone}
	}
	return res, nil
}

// UpdateStatus forwards a POS status through MapStatus. The ack echoes the
// status as the caller sent it.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string, creds model.ProviderCredentials) (model.StatusAck, error) {
	if status == "" {
		return model.StatusAck{}, failf(CodeStatusUpdateFailed, "status is required")
	}
	if err := s.setStatus(ctx, orderID, doordash.MapStatus(status), creds); err != nil {
		s.Log.WithError(err).WithField("order_id", orderID).Error("status update failed")
		return model.StatusAck{}, fail(CodeStatusUpdateFailed, err)
	}
	s.Log.WithFields(logrus.Fields{"order_id": orderID, "status": status}).Info("order status updated")
	return model.StatusAck{OrderID: orderID, Status: status, At: s.Now()}, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string, creds model.ProviderCredentials) (model.DeliveryResult, error) {
	if orderID == "" {
		return model.DeliveryResult{}, failf(CodeOrderFetchFailed, "order id is required")
	}
	d, err := s.client(ctx, creds).GetDelivery(ctx, orderID)
	if err != nil {
		s.Log.WithError(err).WithField("order_id", orderID).Error("order fetch failed")
		return model.DeliveryResult{}, fail(CodeOrderFetchFailed, err)
	}
	res := model.DeliveryResult{
		ExternalOrderID:       orderID,
		Status:                d.DeliveryStatus,
		EstimatedDeliveryTime: d.DropoffTimeEstimated,
		TrackingURL:           d.TrackingURL,
	}
	if d.HasDasher() {
		res.Driver = &model.DriverInfo{Name: *d.DasherName, Phone: d.DasherPhone, Location: d.DasherLocation}
	}
	return res, nil
}

// CancelOrder sets the provider status to cancelled. reason is logged only;
// the provider update carries no reason field.
func (s *Service) CancelOrder(ctx context.Context, orderID, reason string, creds model.ProviderCredentials) (model.StatusAck, error) {
	if reason == "" {
		reason = DefaultCancelReason
	}
	if err := s.setStatus(ctx, orderID, doordash.StatusCancelled, creds); err != nil {
		s.Log.WithError(err).WithField("order_id", orderID).Error("cancellation failed")
		return model.StatusAck{}, fail(CodeCancellationFailed, err)
	}
	s.Log.WithFields(logrus.Fields{"order_id": orderID, "reason": reason}).Info("order cancelled")
	return model.StatusAck{OrderID: orderID, Status: doordash.StatusCancelled, At: s.Now()}, nil
}

func (s *Service) setStatus(ctx context.Context, orderID, providerStatus string, creds model.ProviderCredentials) error {
	_, err := s.client(ctx, creds).UpdateDeliveryStatus(ctx, orderID, providerStatus)
	return err
}
